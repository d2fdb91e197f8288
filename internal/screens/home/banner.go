package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmentor/internal/ui/theme"
)

const bannerArt = `
 ┌┬┐┌─┐┌┬┐┬ ┬  ┌┬┐┌─┐┌┐┌┌┬┐┌─┐┬─┐
 │││├─┤ │ ├─┤  │││├┤ │││ │ │ │├┬┘
 ┴ ┴┴ ┴ ┴ ┴ ┴  ┴ ┴└─┘┘└┘ ┴ └─┘┴└─`

const bannerCompact = "M A T H M E N T O R"

// RenderBanner returns the title banner, falling back to spaced letters on
// narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
