package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Bookings with every seat filled
	colorBooked = color.New(color.FgCyan, color.Bold)

	// Bookings still waiting for a DM or NPC
	colorPending = color.New(color.FgYellow)

	// Rejected saves
	colorConflict = color.New(color.FgRed, color.Bold)

	// Open lanes
	colorFree = color.New(color.FgGreen)

	// Weekends and holidays
	colorHoliday = color.New(color.FgMagenta)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// setupColor turns color off when asked to, or when NO_COLOR is set.
func setupColor(noColor bool) {
	if noColor || termenv.EnvNoColor() {
		DisableColor()
	}
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatBooked(s string) string {
	return colorBooked.Sprint(s)
}

func formatPending(s string) string {
	return colorPending.Sprint(s)
}

func formatConflict(s string) string {
	return colorConflict.Sprint(s)
}

func formatFree(s string) string {
	return colorFree.Sprint(s)
}

func formatHoliday(s string) string {
	return colorHoliday.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
