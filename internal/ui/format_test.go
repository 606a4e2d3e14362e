package ui

import (
	"strings"
	"testing"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/venue"
)

func TestMain(m *testing.M) {
	DisableColor()
	m.Run()
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "", want: ""},
		{id: "abc", want: "abc"},
		{id: "3f2a9c1e-7d4b-4c1a-9e1f-0a1b2c3d4e5f", want: "3f2a9c1e"},
	}
	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		maxCount int
		width    int
		want     int
	}{
		{name: "zero", count: 0, maxCount: 4, width: 20, want: 0},
		{name: "full", count: 4, maxCount: 4, width: 20, want: 20},
		{name: "half", count: 2, maxCount: 4, width: 20, want: 10},
		{name: "tiny still shows", count: 1, maxCount: 100, width: 20, want: 1},
		{name: "no width", count: 3, maxCount: 4, width: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBar(tt.count, tt.maxCount, tt.width)
			if n := len([]rune(got)); n != tt.want {
				t.Errorf("renderBar() has %d cells, want %d", n, tt.want)
			}
		})
	}
}

func TestBookingLine(t *testing.T) {
	tests := []struct {
		name string
		b    *booking.Booking
		want string
	}{
		{
			name: "day session",
			b:    &booking.Booking{ID: "b1", TimeRange: "13:00-17:00", ScriptName: "Echoes", DMs: []string{"Bob"}},
			want: "13:00-17:00  Echoes  DM: Bob  [b1]",
		},
		{
			name: "ends at midnight",
			b:    &booking.Booking{ID: "b2", TimeRange: "20:00-00:00", ScriptName: "Relic", DMs: []string{"Bob"}},
			want: "20:00-00:00  Relic  DM: Bob  [b2]",
		},
		{
			name: "runs past midnight",
			b: &booking.Booking{ID: "b3", TimeRange: "19:00-02:00", ScriptName: "Night Train",
				DMs: []string{"Alice"}, NPCs: []string{"Carol"}},
			want: "19:00-02:00 (overnight)  Night Train  DM: Alice  NPC: Carol  [b3]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bookingLine(tt.b, booking.NewDetector()); got != tt.want {
				t.Errorf("bookingLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDay(t *testing.T) {
	day := booking.NewDay("2026-10-19", []*booking.Booking{
		{ID: "b1", Date: "2026-10-19", RoomID: "r1", TimeRange: "09:00-12:00", ScriptName: "Echoes", DMs: []string{"Bob"}},
		{ID: "b2", Date: "2026-10-19", RoomID: "gone", TimeRange: "14:00-18:00", ScriptName: "Relic", DMs: []string{"TBD"}},
	})
	settings := &venue.Settings{Rooms: []venue.Room{{ID: "r1", Name: "Hall"}}}

	got := renderDay(day, settings, nil, 0)
	want := strings.Join([]string{
		"=== 2026-10-19 Monday ===",
		"Morning",
		"  Hall  09:00-12:00  Echoes  DM: Bob  [b1]",
		"  gone  free",
		"Afternoon",
		"  Hall  free",
		"  gone  14:00-18:00  Relic  DM: TBD  [b2]",
		"Evening",
		"  Hall  free",
		"  gone  free",
		"",
	}, "\n")
	if got != want {
		t.Errorf("renderDay() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderDayWithoutRooms(t *testing.T) {
	got := renderDay(booking.NewDay("2026-10-19", nil), &venue.Settings{}, nil, 0)
	if !strings.Contains(got, "No rooms configured") {
		t.Errorf("renderDay() = %q", got)
	}
}

func TestDayHeaderHoliday(t *testing.T) {
	settings := &venue.Settings{Holidays: []string{"2026-12-25"}}
	if got := dayHeader("2026-12-25", settings); got != "=== 2026-12-25 Friday === holiday" {
		t.Errorf("dayHeader() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 5); got != "abcd…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Errorf("truncate(width 0) = %q", got)
	}
}

func TestRenderStats(t *testing.T) {
	stats := booking.MonthStats{
		Month:    "2026-10",
		Bookings: 3,
		NPCSeats: 4,
		Scripts:  []booking.Count{{Name: "Echoes", Count: 2}, {Name: "Relic", Count: 1}},
	}
	got := renderStats(stats, 40)
	for _, want := range []string{"Sessions:  3", "NPC seats: 4", "  Echoes   2 ", "  Relic    1 ", "DMs\n  none"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}
