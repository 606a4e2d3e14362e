package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/scheduler"
	"github.com/javiermolinar/larpcal/internal/venue"
)

func (a *App) freeCmd() *cobra.Command {
	var (
		room  string
		month string
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "List open slots for a room in a month",
		Example: `  larpcal free --room=hall
  larpcal free --room=attic --month=2026-11`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			settings := a.settings(ctx)
			if len(settings.Rooms) > 0 {
				if _, ok := settings.Room(room); !ok {
					return fmt.Errorf("%w: %s", venue.ErrRoomNotFound, room)
				}
			}

			m, err := dateutil.ParseMonth(month, time.Now())
			if err != nil {
				return err
			}
			free, err := desk.FreeSlots(ctx, room, dateutil.FormatMonth(m))
			if err != nil {
				return err
			}

			a.println(formatHeader(fmt.Sprintf("=== %s free in %s ===", settings.RoomName(room), dateutil.FormatMonth(m))))
			if len(free) == 0 {
				a.println("Fully booked.")
				return nil
			}
			for _, line := range freeLines(free, settings) {
				a.println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room ID")
	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, defaults to this month)")
	_ = cmd.MarkFlagRequired("room")
	return cmd
}

// freeLines prints one line per date listing the open slots.
func freeLines(free []scheduler.FreeSlot, settings *venue.Settings) []string {
	var (
		lines []string
		date  string
		slots []string
	)
	flush := func() {
		if date == "" {
			return
		}
		label := date
		if kind, err := settings.DayKind(date); err == nil && kind != venue.DayWeekday {
			label = formatHoliday(date)
		}
		lines = append(lines, "  "+label+"  "+strings.Join(slots, ", "))
	}
	for _, f := range free {
		if f.Date != date {
			flush()
			date = f.Date
			slots = nil
		}
		slots = append(slots, formatFree(strings.ToLower(f.Slot.Label()))+" "+formatMuted(f.Range))
	}
	flush()
	return lines
}

func (a *App) statsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show booking counts for a month",
		Example: `  larpcal stats
  larpcal stats --month=2026-09`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := a.ensureRepo(); err != nil {
				return err
			}

			m, err := dateutil.ParseMonth(month, time.Now())
			if err != nil {
				return err
			}
			key := dateutil.FormatMonth(m)
			start, end, err := dateutil.MonthBounds(key)
			if err != nil {
				return err
			}

			bookings, err := a.store.ListBookingsByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}
			stats := booking.BuildMonthStats(key, bookings, a.settings(ctx).DMs)
			a.printf("%s", renderStats(stats, termWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, defaults to this month)")
	return cmd
}

// renderStats draws the monthly counts as bar charts.
func renderStats(stats booking.MonthStats, width int) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(fmt.Sprintf("=== %s ===", stats.Month)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Sessions:  %d\n", stats.Bookings)
	fmt.Fprintf(&sb, "NPC seats: %d\n", stats.NPCSeats)

	section := func(title string, counts []booking.Count) {
		sb.WriteString("\n")
		sb.WriteString(formatHeader(title))
		sb.WriteString("\n")
		if len(counts) == 0 {
			sb.WriteString(formatMuted("  none"))
			sb.WriteString("\n")
			return
		}
		nameWidth := 0
		for _, c := range counts {
			nameWidth = max(nameWidth, len([]rune(c.Name)))
		}
		barWidth := max(width-nameWidth-12, 10)
		top := booking.Max(counts)
		for _, c := range counts {
			pad := strings.Repeat(" ", nameWidth-len([]rune(c.Name)))
			fmt.Fprintf(&sb, "  %s%s %3d %s\n", c.Name, pad, c.Count, formatBooked(renderBar(c.Count, top, barWidth)))
		}
	}
	section("Scripts", stats.Scripts)
	section("DMs", stats.DMs)
	return sb.String()
}
