package integration

import (
	"context"
	"testing"
	"time"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/dateutil"
)

// Relative dates resolve against the local wall clock, so a booking entered
// late at night for "today" lands on the local date, not the UTC one.
func TestRelativeDateUsesLocalDay(t *testing.T) {
	desk, repo := openDesk(t)
	ctx := context.Background()

	loc := time.FixedZone("UTC-10", -10*60*60)
	now := time.Date(2026, 10, 16, 23, 30, 0, 0, loc) // already the 17th in UTC

	tests := []struct {
		input string
		want  string
	}{
		{"today", "2026-10-16"},
		{"tomorrow", "2026-10-17"},
		{"saturday", "2026-10-17"},
		{"next-friday", "2026-10-23"},
	}

	for _, tt := range tests {
		got, err := dateutil.ParseRelativeDate(tt.input, now)
		if err != nil {
			t.Fatalf("ParseRelativeDate(%q): %v", tt.input, err)
		}
		if s := dateutil.FormatDate(got); s != tt.want {
			t.Errorf("ParseRelativeDate(%q) = %s, want %s", tt.input, s, tt.want)
		}
	}

	today, _ := dateutil.ParseRelativeDate("today", now)
	b := mustBook(t, desk, booking.Fields{
		Date: dateutil.FormatDate(today), RoomID: "hall", TimeRange: "23:00-02:00",
		ScriptName: "Night Train", DMs: []string{"Alice"},
	})

	day, err := desk.Day(ctx, "2026-10-16")
	if err != nil {
		t.Fatalf("failed to load day: %v", err)
	}
	if day.Len() != 1 || day.Bookings()[0].ID != b.ID {
		t.Fatalf("expected booking on 2026-10-16, got %d bookings", day.Len())
	}

	// An overnight session stays on its start date.
	next, err := repo.ListBookingsByDate(ctx, "2026-10-17")
	if err != nil {
		t.Fatalf("failed to list bookings: %v", err)
	}
	if len(next) != 0 {
		t.Errorf("expected no bookings on 2026-10-17, got %d", len(next))
	}

	week, err := repo.ListBookingsByDateRange(ctx, "2026-10-12", "2026-10-18")
	if err != nil {
		t.Fatalf("failed to list date range: %v", err)
	}
	if len(week) != 1 {
		t.Errorf("expected 1 booking this week, got %d", len(week))
	}
}
