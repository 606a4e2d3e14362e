package booking

import (
	"slices"
	"strings"
)

// Filter selects bookings for list and search views.
type Filter struct {
	Keyword     string // matched case-insensitively against text fields
	Month       string // "YYYY-MM"; empty matches every month
	PendingOnly bool   // only bookings with an unassigned staff seat
}

// Match reports whether b passes the filter.
func (f Filter) Match(b *Booking, d *Detector) bool {
	if f.Month != "" && !strings.HasPrefix(b.Date, f.Month+"-") {
		return false
	}
	if f.PendingOnly && !b.HasPendingStaff(d) {
		return false
	}
	return f.matchKeyword(b)
}

func (f Filter) matchKeyword(b *Booking) bool {
	kw := strings.ToLower(strings.TrimSpace(f.Keyword))
	if kw == "" {
		return true
	}
	fields := []string{b.ScriptName, b.OrganizerName, b.Notes, b.Date}
	fields = append(fields, b.Staff()...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}

// Apply returns the matching bookings, newest date first and by time
// range within a date.
func (f Filter) Apply(bookings []*Booking, d *Detector) []*Booking {
	var result []*Booking
	for _, b := range bookings {
		if b != nil && f.Match(b, d) {
			result = append(result, b)
		}
	}
	slices.SortStableFunc(result, func(a, b *Booking) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.TimeRange, b.TimeRange)
	})
	return result
}
