package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmentor/internal/markup"
	"github.com/abhisek/mathmentor/internal/problem"
	sess "github.com/abhisek/mathmentor/internal/session"
	"github.com/abhisek/mathmentor/internal/ui/components"
	"github.com/abhisek/mathmentor/internal/ui/layout"
	"github.com/abhisek/mathmentor/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderTopic())
	b.WriteString("\n\n")
	if c, ok := problem.ConceptFor(s.params.Category, s.params.Subcategory); ok {
		b.WriteString(renderConcept(c, cw))
		b.WriteString(divider(cw))
		b.WriteString("\n\n")
	}

	if s.state == nil {
		if s.busy != "" {
			b.WriteString(s.spinner.View() + theme.Hint.Render(s.busy+"..."))
		} else if s.errMsg != "" {
			b.WriteString(wrap(theme.Incorrect.Render(s.errMsg), cw))
			b.WriteString("\n\n")
			b.WriteString(theme.Hint.Render("Press r to try again."))
		}
		return pad(b.String(), width)
	}

	b.WriteString(s.renderProblem(cw))
	b.WriteString(divider(cw))
	b.WriteString("\n")
	b.WriteString(s.renderSteps(cw))

	if len(s.state.Hints) > 0 {
		b.WriteString("\n")
		b.WriteString(renderHints(s.state.Hints, cw))
	}
	if s.feedback != "" {
		style := theme.Incorrect
		if s.correct {
			style = theme.Correct
		}
		b.WriteString("\n")
		b.WriteString(style.Render(s.feedback))
		b.WriteString("\n")
	}
	if s.state.Phase == sess.PhaseSolved {
		b.WriteString("\n")
		b.WriteString(theme.Stars.Render(earned(s.state.StarsEarned)))
		b.WriteString("\n")
	}
	if s.state.Solution != nil {
		b.WriteString("\n")
		b.WriteString(renderSolution(s.state.Solution, cw))
	}
	if s.busy != "" {
		b.WriteString("\n")
		b.WriteString(s.spinner.View() + theme.Hint.Render(s.busy+"..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(wrap(theme.Incorrect.Render(s.errMsg), cw))
	}

	return pad(b.String(), width)
}

func (s *PracticeScreen) renderTopic() string {
	p := s.params
	topic := fmt.Sprintf("%s › %s",
		problem.TopicName(problem.Categories, p.Category),
		problem.TopicName(problem.Subcategories[p.Category], p.Subcategory))
	return theme.Title.Render(topic) + "  " +
		theme.Subtitle.Render(problem.TopicName(problem.Difficulties, p.Difficulty)) + " " +
		theme.Stars.Render(strings.Repeat("★", p.BaseStars()))
}

func renderConcept(c problem.Concept, cw int) string {
	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(wrap(theme.Hint.Render(c.Description), cw))
	b.WriteString("\n")
	examples := make([]string, len(c.Examples))
	for i, ex := range c.Examples {
		examples[i] = markup.RenderString(ex, markup.TerminalRenderer{}, " ")
	}
	b.WriteString(wrap("Examples: "+strings.Join(examples, theme.Hint.Render("  ·  ")), cw))
	b.WriteString("\n")
	for _, p := range c.KeyPoints {
		b.WriteString(wrap(theme.Hint.Render("• "+p), cw))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// renderProblem shows each section of the problem with math typeset for the
// terminal, followed by any figure or function the text describes.
func (s *PracticeScreen) renderProblem(cw int) string {
	var b strings.Builder
	a := s.state.Analysis
	for _, block := range a.Render(markup.TerminalRenderer{}) {
		b.WriteString(theme.SectionHeading.Render(block.Title))
		b.WriteString("\n")
		parts := make([]string, len(block.Output))
		for i, r := range block.Output {
			parts[i] = r.Output
		}
		b.WriteString(wrap(strings.Join(parts, " "), cw))
		b.WriteString("\n\n")
	}
	if a.Scene != nil {
		b.WriteString(theme.SectionHeading.Render("Figure"))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(a.Scene.Describe()))
		b.WriteString("\n\n")
	}
	if len(a.Functions) > 0 {
		b.WriteString(theme.SectionHeading.Render("Graph"))
		b.WriteString("\n")
		for _, fn := range a.Functions {
			b.WriteString("  " + markup.RenderString(fn, markup.TerminalRenderer{}, " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *PracticeScreen) renderSteps(cw int) string {
	st := s.state
	var b strings.Builder
	b.WriteString(components.ProgressBar{Label: "Steps", Done: st.Completed(), Total: len(st.Steps), Width: min(cw, 50)}.View())
	b.WriteString("\n\n")

	for i, step := range st.Steps {
		var line string
		switch {
		case step.Done:
			line = theme.Correct.Render("✓ ") + theme.Body.Render(step.Instruction)
			if step.Answer != "" {
				line += theme.Hint.Render("  " + step.Answer)
			}
		case i == st.Current && st.Phase == sess.PhaseWorking:
			line = theme.Selected.Render("▸ " + step.Instruction)
		default:
			line = theme.Subtitle.Render("· " + step.Instruction)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if st.Phase == sess.PhaseWorking {
		b.WriteString("\n")
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}
	return b.String()
}

func renderHints(hints []string, cw int) string {
	var b strings.Builder
	for i, h := range hints {
		label := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("Hint %d: ", i+1))
		b.WriteString(wrap(label+markup.RenderString(h, markup.TerminalRenderer{}, " "), cw))
		b.WriteString("\n")
	}
	return b.String()
}

func renderSolution(lines []string, cw int) string {
	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render("Solution"))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(wrap(markup.RenderString(line, markup.TerminalRenderer{}, " "), cw))
		b.WriteString("\n")
	}
	return b.String()
}

func earned(stars int) string {
	if stars == 1 {
		return "Solved! You earned ★ 1 star."
	}
	return fmt.Sprintf("Solved! You earned %s %d stars.", strings.Repeat("★", stars), stars)
}

func divider(cw int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(s)
}
