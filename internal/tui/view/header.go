package view

import "time"

// DayKind labels shown next to the date.
const (
	KindWeekend = "weekend"
	KindHoliday = "holiday"
)

// HeaderViewState holds the data for the title bar.
type HeaderViewState struct {
	Venue string
	Date  time.Time
	Today bool
	Kind  string // "", KindWeekend or KindHoliday
}

// DayTitle renders the date as e.g. "Sat 17 Oct 2026".
func DayTitle(date time.Time) string {
	return date.Format("Mon 2 Jan 2006")
}

// HeaderParts returns the title and the tag shown after it.
func HeaderParts(state HeaderViewState) (title, tag string) {
	title = DayTitle(state.Date)
	if state.Venue != "" {
		title = state.Venue + "  " + title
	}
	switch {
	case state.Today && state.Kind != "":
		tag = "today, " + state.Kind
	case state.Today:
		tag = "today"
	default:
		tag = state.Kind
	}
	return title, tag
}

// SlotHeaders builds the column labels: the slot column followed by rooms.
func SlotHeaders(roomNames []string) []string {
	headers := make([]string, 0, len(roomNames)+1)
	headers = append(headers, "")
	return append(headers, roomNames...)
}
