package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/venue"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		pending   bool
		keyword   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings in a date range",
		Long: `List all bookings within a date range.

If no dates are specified, lists today's bookings.
If only --start is specified, lists bookings for that single day.
If both --start and --end are specified, lists bookings in that range (inclusive).`,
		Example: `  larpcal list
  larpcal list --start=2026-10-01 --end=2026-10-31 --pending
  larpcal list --start=2026-10-01 --end=2026-10-31 --search=feast`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			start, end := dateRange.Bounds()

			bookings, err := a.store.ListBookingsByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}

			filter := booking.Filter{Keyword: keyword, PendingOnly: pending}
			var matched []*booking.Booking
			for _, b := range bookings {
				if filter.Match(b, desk.Detector()) {
					matched = append(matched, b)
				}
			}

			if len(matched) == 0 {
				a.println("No bookings found in the specified date range.")
				return nil
			}
			a.printGrouped(matched, a.settings(ctx), desk.Detector())
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only bookings with an unassigned DM or NPC")
	cmd.Flags().StringVar(&keyword, "search", "", "Only bookings mentioning this text")

	return cmd
}

func (a *App) searchCmd() *cobra.Command {
	var (
		month   string
		all     bool
		pending bool
	)

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search bookings by script, organizer, staff, notes or date",
		Long: `Search bookings case-insensitively. Results are newest first.

By default only the current month is searched; use --month to pick another
month or --all to search everything.`,
		Example: `  larpcal search feast
  larpcal search ann --month=2026-09
  larpcal search wei --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			filter := booking.Filter{Keyword: args[0], PendingOnly: pending}
			if !all {
				m, err := dateutil.ParseMonth(month, time.Now())
				if err != nil {
					return err
				}
				filter.Month = dateutil.FormatMonth(m)
			}

			bookings, err := a.store.ListAllBookings(ctx)
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}

			results := filter.Apply(bookings, desk.Detector())
			if len(results) == 0 {
				a.printf("No bookings match %q.\n", args[0])
				return nil
			}
			a.printGrouped(results, a.settings(ctx), desk.Detector())
			a.println(formatMuted(fmt.Sprintf("%d found", len(results))))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to search (YYYY-MM, defaults to this month)")
	cmd.Flags().BoolVar(&all, "all", false, "Search every month")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only bookings with an unassigned DM or NPC")
	return cmd
}

// printGrouped prints bookings under a header per date, in the given order.
func (a *App) printGrouped(bookings []*booking.Booking, settings *venue.Settings, d *booking.Detector) {
	width := termWidth()
	var currentDate string
	for _, b := range bookings {
		if b.Date != currentDate {
			if currentDate != "" {
				a.println()
			}
			a.println(dayHeader(b.Date, settings))
			currentDate = b.Date
		}
		line := fmt.Sprintf("  %-9s %s  %s", b.Slot(), settings.RoomName(b.RoomID), bookingLine(b, d))
		a.println(truncate(line, width))
	}
}
