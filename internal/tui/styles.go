// Package tui provides the terminal day view for larpcal.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/larpcal/internal/tui/theme"
)

// Width of the slot label column.
const slotColWidth = 11

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg lipgloss.Color

	TitleStyle   lipgloss.Style
	TodayStyle   lipgloss.Style
	WeekendStyle lipgloss.Style
	HolidayStyle lipgloss.Style

	HeaderStyle lipgloss.Style
	SlotStyle   lipgloss.Style
	BorderStyle lipgloss.Style

	// Cell styles
	FreeStyle      lipgloss.Style
	BookedStyle    lipgloss.Style
	BookedAltStyle lipgloss.Style // every other room column
	PendingStyle   lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	PromptStyle lipgloss.Style
}

// NewStyles creates styles from a theme palette.
func NewStyles(p *theme.Palette) *Styles {
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)
	cell := base.Padding(0, 1)

	return &Styles{
		colorBg: p.Bg,

		TitleStyle:   base.Foreground(p.Accent).Bold(true),
		TodayStyle:   lipgloss.NewStyle().Background(p.Today).Foreground(p.TextOnAccent).Padding(0, 1),
		WeekendStyle: lipgloss.NewStyle().Background(p.Weekend).Foreground(p.TextOnAccent).Padding(0, 1),
		HolidayStyle: lipgloss.NewStyle().Background(p.Holiday).Foreground(p.TextOnHoliday).Padding(0, 1),

		HeaderStyle: cell.Background(p.BgHighlight).Foreground(p.Accent).Bold(true),
		SlotStyle:   cell.Background(p.BgHighlight).Bold(true),
		BorderStyle: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),

		FreeStyle:      cell.Foreground(p.FgMuted),
		BookedStyle:    cell.Background(p.BookedBg).Foreground(p.TextOnBooked),
		BookedAltStyle: cell.Background(p.BookedBgAlt).Foreground(p.TextOnBooked),
		PendingStyle:   cell.Background(p.PendingBg).Foreground(p.TextOnPending),

		StatusStyle: base.Foreground(p.FgMuted),
		ErrorStyle:  base.Foreground(p.Pending).Bold(true),
		PromptStyle: base.Foreground(p.Accent),
	}
}

// stylesFor loads the named theme, falling back to the default palette.
func stylesFor(name string) *Styles {
	t, err := theme.Load(name)
	if err != nil {
		return NewStyles(theme.NewPalette(nil))
	}
	return NewStyles(theme.NewPalette(t))
}
