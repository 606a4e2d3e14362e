package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/scheduler"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// dayLoadedMsg carries a loaded day back to Update.
type dayLoadedMsg struct {
	date     string
	day      *booking.Day
	settings *venue.Settings
	err      error
}

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	err error
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// loadDay fetches a date's bookings and the current reference lists.
func loadDay(desk *scheduler.Desk, store venue.Store, date string) tea.Cmd {
	return func() tea.Msg {
		if desk == nil {
			return dayLoadedMsg{date: date, day: booking.NewDay(date, nil), settings: &venue.Settings{}}
		}
		ctx := context.Background()
		day, err := desk.Day(ctx, date)
		if err != nil {
			return dayLoadedMsg{date: date, err: err}
		}
		settings := &venue.Settings{}
		if store != nil {
			s, err := store.LoadSettings(ctx)
			if err != nil {
				return dayLoadedMsg{date: date, err: err}
			}
			settings = s
		}
		return dayLoadedMsg{date: date, day: day, settings: settings}
	}
}

func copyText(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboardWrite(text)}
	}
}
