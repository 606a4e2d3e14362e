package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	FooterH    int
	LegendLine string
	PromptLine string
	StatusLine string
	HelpLine   string
	VAlign     lipgloss.Position
	Bg         lipgloss.Color
}

// RenderFooter renders the legend, prompt, status and help lines, skipping
// empty ones.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	var lines []string
	for _, l := range []string{state.LegendLine, state.PromptLine, state.StatusLine, state.HelpLine} {
		if l != "" {
			lines = append(lines, FitLines(l, state.InnerW))
		}
	}
	// The help line is the last to go when space runs out.
	if len(lines) > state.FooterH {
		lines = lines[len(lines)-state.FooterH:]
	}

	return PlaceBox(state.InnerW, state.FooterH, state.VAlign, strings.Join(lines, "\n"), state.Bg)
}
