package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/tui/view"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// gridRooms lists the configured rooms followed by rooms that only appear
// in the day's bookings, such as rooms removed since.
func gridRooms(day *booking.Day, settings *venue.Settings) []string {
	rooms := settings.RoomIDs()
	if day == nil {
		return rooms
	}
	for _, id := range day.RoomIDs() {
		if !slices.Contains(rooms, id) {
			rooms = append(rooms, id)
		}
	}
	return rooms
}

// cellLines renders a lane's bookings, two lines each, cut to width.
func cellLines(lane []*booking.Booking, width int) string {
	if len(lane) == 0 {
		return "free"
	}
	var lines []string
	for _, b := range lane {
		lines = append(lines,
			ansi.Truncate(b.TimeRange+" "+b.ScriptName, width, "…"),
			ansi.Truncate(staffLine(b), width, "…"),
		)
	}
	return strings.Join(lines, "\n")
}

func staffLine(b *booking.Booking) string {
	line := "DM " + strings.Join(b.DMs, ", ")
	if len(b.NPCs) > 0 {
		line += " · NPC " + strings.Join(b.NPCs, ", ")
	}
	return line
}

// laneHasPending reports whether any booking in the lane is short of staff.
func laneHasPending(lane []*booking.Booking, d *booking.Detector) bool {
	for _, b := range lane {
		if b.HasPendingStaff(d) {
			return true
		}
	}
	return false
}

// tableContent builds one row per slot with a cell per room.
func (m Model) tableContent(rooms []string, colW int) view.TableContent {
	d := m.detector()
	var content view.TableContent
	for _, slot := range booking.Slots() {
		row := []string{slot.Label()}
		styles := []lipgloss.Style{m.styles.SlotStyle}
		for i, id := range rooms {
			var lane []*booking.Booking
			if m.day != nil {
				lane = m.day.Lane(slot, id)
			}
			row = append(row, cellLines(lane, colW))

			switch {
			case len(lane) == 0:
				styles = append(styles, m.styles.FreeStyle)
			case laneHasPending(lane, d):
				styles = append(styles, m.styles.PendingStyle)
			case i%2 == 1:
				styles = append(styles, m.styles.BookedAltStyle)
			default:
				styles = append(styles, m.styles.BookedStyle)
			}
		}
		content.Rows = append(content.Rows, row)
		content.CellStyles = append(content.CellStyles, styles)
	}
	return content
}

// DaySummary renders a day as plain text for sharing.
func DaySummary(day *booking.Day, settings *venue.Settings, d *booking.Detector) string {
	if settings == nil {
		settings = &venue.Settings{}
	}
	var sb strings.Builder
	sb.WriteString(day.Date)
	if kind, err := settings.DayKind(day.Date); err == nil && kind != venue.DayWeekday {
		fmt.Fprintf(&sb, " (%s)", kind)
	}
	sb.WriteString("\n")

	rooms := gridRooms(day, settings)
	for _, slot := range booking.Slots() {
		sb.WriteString(slot.Label())
		sb.WriteString("\n")
		for _, id := range rooms {
			lane := day.Lane(slot, id)
			if len(lane) == 0 {
				fmt.Fprintf(&sb, "  %s: free\n", settings.RoomName(id))
				continue
			}
			for _, b := range lane {
				fmt.Fprintf(&sb, "  %s: %s %s (%s)", settings.RoomName(id), b.TimeRange, b.ScriptName, staffLine(b))
				if b.HasPendingStaff(d) {
					sb.WriteString(" - staff needed")
				}
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
