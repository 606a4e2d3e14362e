package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// bookingFlags are the form fields shared by add, edit and check.
type bookingFlags struct {
	date         string
	room         string
	timeRange    string
	slot         string
	script       string
	dms          []string
	npcs         []string
	organizer    string
	contact      string
	notes        string
	deposit      int
	depositLabel string
}

func (f *bookingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, saturday, next-friday...)")
	cmd.Flags().StringVar(&f.room, "room", "", "Room ID")
	cmd.Flags().StringVar(&f.timeRange, "time", "", "Time range (HH:MM-HH:MM, may run past midnight)")
	cmd.Flags().StringVar(&f.slot, "slot", "", "Use the default range of a slot (morning, afternoon, evening)")
	cmd.Flags().StringVar(&f.script, "script", "", "Script name")
	cmd.Flags().StringSliceVar(&f.dms, "dm", nil, "DM names (repeat or comma-separate)")
	cmd.Flags().StringSliceVar(&f.npcs, "npc", nil, "NPC names (repeat or comma-separate)")
	cmd.Flags().StringVar(&f.organizer, "organizer", "", "Organizer name")
	cmd.Flags().StringVar(&f.contact, "contact", "", "Organizer contact")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&f.deposit, "deposit", 0, "Deposit amount")
	cmd.Flags().StringVar(&f.depositLabel, "deposit-label", "", "Deposit waiver label instead of an amount (see: larpcal label list)")
}

// resolveDate turns the --date flag into YYYY-MM-DD.
func (f *bookingFlags) resolveDate(now time.Time) (string, error) {
	t, err := dateutil.ParseRelativeDate(f.date, now)
	if err != nil {
		return "", err
	}
	return dateutil.FormatDate(t), nil
}

// resolveRange returns --time, or the prefill range of --slot.
func (f *bookingFlags) resolveRange(prefill func(booking.Slot) string) (string, error) {
	if f.timeRange != "" {
		return f.timeRange, nil
	}
	if f.slot == "" {
		return "", fmt.Errorf("either --time or --slot is required")
	}
	slot, err := booking.ParseSlot(f.slot)
	if err != nil {
		return "", err
	}
	return prefill(slot), nil
}

// fields builds form values from every flag.
func (f *bookingFlags) fields(now time.Time, prefill func(booking.Slot) string) (booking.Fields, error) {
	date, err := f.resolveDate(now)
	if err != nil {
		return booking.Fields{}, err
	}
	timeRange, err := f.resolveRange(prefill)
	if err != nil {
		return booking.Fields{}, err
	}
	return booking.Fields{
		Date:             date,
		RoomID:           f.room,
		TimeRange:        timeRange,
		ScriptName:       f.script,
		DMs:              f.dms,
		NPCs:             f.npcs,
		OrganizerName:    f.organizer,
		OrganizerContact: f.contact,
		Notes:            f.notes,
		Deposit:          booking.Deposit{Amount: f.deposit, Label: f.depositLabel},
	}, nil
}

// apply copies the flags that were set on cmd onto b.
func (f *bookingFlags) apply(cmd *cobra.Command, b *booking.Booking, now time.Time, prefill func(booking.Slot) string) error {
	changed := cmd.Flags().Changed
	if changed("date") {
		date, err := f.resolveDate(now)
		if err != nil {
			return err
		}
		b.Date = date
	}
	if changed("time") || changed("slot") {
		r, err := f.resolveRange(prefill)
		if err != nil {
			return err
		}
		b.TimeRange = r
	}
	if changed("room") {
		b.RoomID = f.room
	}
	if changed("script") {
		b.ScriptName = f.script
	}
	if changed("dm") {
		b.DMs = f.dms
	}
	if changed("npc") {
		b.NPCs = f.npcs
	}
	if changed("organizer") {
		b.OrganizerName = f.organizer
	}
	if changed("contact") {
		b.OrganizerContact = f.contact
	}
	if changed("notes") {
		b.Notes = f.notes
	}
	if changed("deposit") || changed("deposit-label") {
		b.Deposit = booking.Deposit{Amount: f.deposit, Label: f.depositLabel}
	}
	return nil
}

// conflictError shows a conflict with room names while still unwrapping
// to the underlying *booking.Conflict.
type conflictError struct {
	conflict *booking.Conflict
	settings *venue.Settings
}

func (e *conflictError) Error() string {
	return e.conflict.Explain(e.settings.RoomName)
}

func (e *conflictError) Unwrap() error {
	return e.conflict
}

// explain rewrites a conflict error for display.
func (a *App) explain(ctx context.Context, err error) error {
	var c *booking.Conflict
	if !errors.As(err, &c) {
		return err
	}
	return explainWith(a.settings(ctx), err)
}

func explainWith(settings *venue.Settings, err error) error {
	var c *booking.Conflict
	if errors.As(err, &c) {
		return &conflictError{conflict: c, settings: settings}
	}
	return err
}

func (a *App) addCmd() *cobra.Command {
	var f bookingFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a room",
		Long: `Book a room for a session.

The booking is refused if the room is taken, the same script already runs
at an overlapping time, or one of the DMs or NPCs is already working
elsewhere. Staff named as a pending placeholder (TBD by default) never
conflict.`,
		Example: `  larpcal add --date=2026-10-17 --room=hall --time=19:00-02:00 \
    --script="The Last Feast" --dm=Ann --npc=Bob,TBD --organizer=Wei
  larpcal add --date=saturday --room=attic --slot=morning --script=Echoes --dm=TBD --organizer=Li`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			fields, err := f.fields(time.Now(), desk.DefaultRange)
			if err != nil {
				return err
			}
			b, err := booking.New(fields)
			if err != nil {
				return err
			}

			if err := desk.Save(ctx, b); err != nil {
				return a.explain(ctx, err)
			}

			a.printf("Booked %s in %s on %s (%s, %s slot)\n",
				b.ScriptName, a.settings(ctx).RoomName(b.RoomID), b.Date, b.TimeRange, b.Slot())
			a.printf("  id: %s\n", b.ID)
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("script")
	_ = cmd.MarkFlagRequired("dm")
	_ = cmd.MarkFlagRequired("organizer")

	return cmd
}

func (a *App) editCmd() *cobra.Command {
	var f bookingFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a booking",
		Long: `Change the fields of an existing booking. Only the flags given are
changed. The edited booking goes through the same conflict checks as a new
one, ignoring its own stored copy.`,
		Example: `  larpcal edit 3f2a9c1e-... --time=19:30-02:30
  larpcal edit 3f2a9c1e-... --npc=Bob,Mia`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			b, err := a.findBooking(ctx, args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd, b, time.Now(), desk.DefaultRange); err != nil {
				return err
			}

			if err := desk.Save(ctx, b); err != nil {
				return a.explain(ctx, err)
			}
			a.printf("Updated %s: %s on %s (%s)\n", shortID(b.ID), b.ScriptName, b.Date, b.TimeRange)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a booking",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}
			b, err := a.findBooking(ctx, args[0])
			if err != nil {
				return err
			}
			if err := desk.Delete(ctx, b.ID); err != nil {
				return err
			}
			a.printf("Deleted %s (%s on %s)\n", shortID(b.ID), b.ScriptName, b.Date)
			return nil
		},
	}
}

func (a *App) checkCmd() *cobra.Command {
	var (
		f  bookingFlags
		id string
	)

	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Check a booking for conflicts without saving it",
		Example: `  larpcal check --date=2026-10-17 --room=hall --time=18:00-20:00 --script=Echoes --dm=Ann --organizer=Li`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			fields, err := f.fields(time.Now(), desk.DefaultRange)
			if err != nil {
				return err
			}
			b, err := booking.New(fields)
			if err != nil {
				return err
			}
			b.ID = id

			conflict, err := desk.Check(ctx, b)
			if err != nil {
				return err
			}
			if conflict != nil {
				err := a.explain(ctx, conflict)
				a.println(formatConflict("conflict: ") + err.Error())
				return err
			}
			a.printf("%s %s fits in %s on %s (%s slot)\n",
				formatFree("ok:"), b.TimeRange, a.settings(ctx).RoomName(b.RoomID), b.Date, b.Slot())
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "ID of the booking being edited, so it does not conflict with itself")
	return cmd
}

// findBooking resolves a full ID or a unique prefix of one.
func (a *App) findBooking(ctx context.Context, id string) (*booking.Booking, error) {
	desk, err := a.ensureDesk()
	if err != nil {
		return nil, err
	}
	b, err := desk.Get(ctx, id)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, booking.ErrBookingNotFound) || len(id) < 4 {
		return nil, err
	}

	all, listErr := a.store.ListAllBookings(ctx)
	if listErr != nil {
		return nil, fmt.Errorf("listing bookings: %w", listErr)
	}
	var match *booking.Booking
	for _, candidate := range all {
		if len(candidate.ID) >= len(id) && candidate.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("booking id %q is ambiguous", id)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}
