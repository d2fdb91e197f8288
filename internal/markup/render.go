package markup

import (
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abhisek/mathmentor/internal/ui/theme"
)

// TerminalRenderer renders spans as styled terminal text.
type TerminalRenderer struct{}

var (
	labelStyles = map[string]lipgloss.Style{
		"primary": lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		"success": lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
		"info":    lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
	}
	plainLabelStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	mathStyle       = lipgloss.NewStyle().Foreground(theme.Text)
	textStyle       = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func (TerminalRenderer) RenderLiteral(payload string) string {
	nodes, err := parseFragment(payload)
	if err != nil {
		return plainLabelStyle.Render(payload)
	}
	var parts []string
	for _, n := range nodes {
		text := strings.TrimSpace(textContent(n))
		if text == "" {
			continue
		}
		style := plainLabelStyle
		for _, class := range strings.Fields(attr(n, "class")) {
			if s, ok := labelStyles[class]; ok {
				style = s
			}
		}
		parts = append(parts, style.Render(text))
	}
	return strings.Join(parts, " ")
}

func (TerminalRenderer) RenderMath(payload string) (string, error) {
	s, err := ToUnicode(payload)
	if err != nil {
		return "", err
	}
	return mathStyle.Render(s), nil
}

func (TerminalRenderer) RenderText(payload string) string {
	return textStyle.Render(payload)
}

// HTMLRenderer renders spans as HTML for a browser that typesets elements of
// class "math" itself. Literal markup is re-serialized through an allowlist.
type HTMLRenderer struct{}

var allowedElements = map[atom.Atom]bool{
	atom.Div: true, atom.Span: true, atom.P: true, atom.B: true,
	atom.Strong: true, atom.Em: true, atom.I: true, atom.Br: true,
}

func (HTMLRenderer) RenderLiteral(payload string) string {
	nodes, err := parseFragment(payload)
	if err != nil {
		return html.EscapeString(payload)
	}
	var b strings.Builder
	for _, n := range nodes {
		writeSanitized(&b, n)
	}
	return b.String()
}

func (HTMLRenderer) RenderMath(payload string) (string, error) {
	if _, err := ToUnicode(payload); err != nil {
		return "", err
	}
	return `<span class="math">` + html.EscapeString(payload) + `</span>`, nil
}

func (HTMLRenderer) RenderText(payload string) string {
	return `<span class="text">` + html.EscapeString(payload) + `</span>`
}

func parseFragment(s string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(s), ctx)
}

func writeSanitized(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		if !allowedElements[n.DataAtom] {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				writeSanitized(b, c)
			}
			return
		}
		b.WriteString("<" + n.Data)
		if class := attr(n, "class"); class != "" {
			b.WriteString(` class="` + html.EscapeString(class) + `"`)
		}
		b.WriteString(">")
		if n.DataAtom == atom.Br {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeSanitized(b, c)
		}
		b.WriteString("</" + n.Data + ">")
	}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
