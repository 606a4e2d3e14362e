package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/venue"
)

const shortIDLen = 8

// shortID returns the prefix of a booking ID shown in listings.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// truncate cuts s to width cells, keeping escape sequences intact.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// formatStaff joins names, highlighting unassigned seats.
func formatStaff(names []string, d *booking.Detector) string {
	parts := make([]string, len(names))
	for i, n := range names {
		if d.IsPending(n) {
			parts[i] = formatPending(n)
		} else {
			parts[i] = n
		}
	}
	return strings.Join(parts, ", ")
}

// bookingLine renders one booking on a single line.
func bookingLine(b *booking.Booking, d *booking.Detector) string {
	script := formatBooked(b.ScriptName)
	if b.HasPendingStaff(d) {
		script = formatPending(b.ScriptName)
	}
	timeRange := b.TimeRange
	if iv, err := b.Interval(); err == nil && iv.Overnight() {
		timeRange += formatMuted(" (overnight)")
	}
	line := fmt.Sprintf("%s  %s  DM: %s", timeRange, script, formatStaff(b.DMs, d))
	if len(b.NPCs) > 0 {
		line += "  NPC: " + formatStaff(b.NPCs, d)
	}
	return line + "  " + formatMuted("["+shortID(b.ID)+"]")
}

// dayHeader renders the title line for a date.
func dayHeader(date string, settings *venue.Settings) string {
	t, err := dateutil.ParseDay(date)
	if err != nil {
		return formatHeader("=== " + date + " ===")
	}
	title := fmt.Sprintf("=== %s %s ===", date, t.Weekday())
	kind, _ := settings.DayKind(date)
	switch kind {
	case venue.DayHoliday:
		return formatHeader(title) + " " + formatHoliday("holiday")
	case venue.DaySaturday, venue.DaySunday:
		return formatHeader(title) + " " + formatHoliday("weekend")
	default:
		return formatHeader(title)
	}
}

// dayRooms lists the configured rooms followed by any room that only
// appears in the day's bookings.
func dayRooms(day *booking.Day, settings *venue.Settings) []string {
	rooms := settings.RoomIDs()
	for _, id := range day.RoomIDs() {
		if !slices.Contains(rooms, id) {
			rooms = append(rooms, id)
		}
	}
	return rooms
}

// renderDay renders a day as slot sections with one row per room.
func renderDay(day *booking.Day, settings *venue.Settings, d *booking.Detector, width int) string {
	var sb strings.Builder
	sb.WriteString(dayHeader(day.Date, settings))
	sb.WriteString("\n")

	rooms := dayRooms(day, settings)
	if len(rooms) == 0 {
		sb.WriteString(formatMuted("No rooms configured. Add one with: larpcal room add <id> <name>"))
		sb.WriteString("\n")
		return sb.String()
	}

	nameWidth := 0
	for _, id := range rooms {
		nameWidth = max(nameWidth, len([]rune(settings.RoomName(id))))
	}

	for _, slot := range booking.Slots() {
		sb.WriteString(formatHeader(slot.Label()))
		sb.WriteString("\n")
		for _, id := range rooms {
			name := settings.RoomName(id)
			pad := strings.Repeat(" ", nameWidth-len([]rune(name)))
			prefix := "  " + name + pad + "  "

			lane := day.Lane(slot, id)
			if len(lane) == 0 {
				sb.WriteString(prefix + formatFree("free") + "\n")
				continue
			}
			for i, b := range lane {
				if i > 0 {
					prefix = strings.Repeat(" ", nameWidth+4)
				}
				sb.WriteString(truncate(prefix+bookingLine(b, d), width))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// renderBar draws a bar of at most width cells scaled against maxCount.
func renderBar(count, maxCount, width int) string {
	if count <= 0 || maxCount <= 0 || width <= 0 {
		return ""
	}
	n := count * width / maxCount
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
