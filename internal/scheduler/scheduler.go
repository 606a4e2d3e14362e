// Package scheduler runs the booking desk: the validate, check and save
// flow behind every booking form.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/debuglog"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// Built-in prefill ranges, used when Options.Ranges has no entry.
var defaultRanges = map[booking.Slot]string{
	booking.SlotMorning:   "08:00-13:00",
	booking.SlotAfternoon: "13:30-18:30",
	booking.SlotEvening:   "19:00-03:00",
}

// Options configures a Desk. The zero value is usable.
type Options struct {
	Detector *booking.Detector
	Ranges   map[booking.Slot]string
	Logger   *debuglog.Logger
	Now      func() time.Time
}

// Desk checks and stores bookings.
//
// Checks run against a fresh snapshot of the date being booked, but
// nothing locks the date between the check and the write: two desks
// saving conflicting bookings at the same moment may both succeed.
type Desk struct {
	repo     booking.Repository
	store    venue.Store
	detector *booking.Detector
	ranges   map[booking.Slot]string
	log      *debuglog.Logger
	now      func() time.Time
}

// New creates a Desk. store may be nil, in which case script names are
// not recorded.
func New(repo booking.Repository, store venue.Store, opts Options) *Desk {
	d := &Desk{
		repo:     repo,
		store:    store,
		detector: opts.Detector,
		ranges:   make(map[booking.Slot]string, len(defaultRanges)),
		log:      opts.Logger,
		now:      opts.Now,
	}
	if d.detector == nil {
		d.detector = booking.NewDetector()
	}
	if d.now == nil {
		d.now = time.Now
	}
	for slot, r := range defaultRanges {
		d.ranges[slot] = r
	}
	for slot, r := range opts.Ranges {
		if r != "" {
			d.ranges[slot] = r
		}
	}
	return d
}

// Detector returns the conflict detector used by the desk.
func (d *Desk) Detector() *booking.Detector {
	return d.detector
}

// DefaultRange returns the time range a new booking in slot is prefilled with.
func (d *Desk) DefaultRange(slot booking.Slot) string {
	return d.ranges[slot]
}

// Check validates b and looks for a conflict on its date.
// A validation or format error is returned as err; a blocking booking is
// returned as the conflict with a nil error.
func (d *Desk) Check(ctx context.Context, b *booking.Booking) (*booking.Conflict, error) {
	b.Normalize()
	if err := b.Validate(); err != nil {
		d.log.Log("BOOKING_INVALID", map[string]any{
			"id":    b.ID,
			"date":  b.Date,
			"error": err.Error(),
		})
		return nil, err
	}

	existing, err := d.repo.ListBookingsByDate(ctx, b.Date)
	if err != nil {
		return nil, fmt.Errorf("loading bookings for %s: %w", b.Date, err)
	}

	conflict, err := d.detector.Check(b, existing)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		d.log.Log("BOOKING_REJECTED", map[string]any{
			"id":          b.ID,
			"date":        b.Date,
			"room":        b.RoomID,
			"time_range":  b.TimeRange,
			"kind":        string(conflict.Kind),
			"existing_id": conflict.Existing.ID,
			"person":      conflict.Person,
		})
	}
	return conflict, nil
}

// Save checks b and then stores it. A booking whose ID is empty or not yet
// stored is created; otherwise the stored booking is replaced.
// A conflict is returned as a *booking.Conflict error.
func (d *Desk) Save(ctx context.Context, b *booking.Booking) error {
	conflict, err := d.Check(ctx, b)
	if err != nil {
		return err
	}
	if conflict != nil {
		return conflict
	}

	now := d.now()
	var stored *booking.Booking
	if b.ID != "" {
		stored, err = d.repo.GetBooking(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("loading booking %s: %w", b.ID, err)
		}
	}

	if stored == nil {
		b.AssignID()
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		b.UpdatedAt = now
		if err := d.repo.CreateBooking(ctx, b); err != nil {
			d.log.Error("create booking", err)
			return fmt.Errorf("creating booking: %w", err)
		}
	} else {
		b.CreatedAt = stored.CreatedAt
		b.UpdatedAt = now
		if err := d.repo.UpdateBooking(ctx, b); err != nil {
			d.log.Error("update booking", err)
			return fmt.Errorf("updating booking: %w", err)
		}
	}

	d.log.Log("BOOKING_SAVED", map[string]any{
		"id":         b.ID,
		"date":       b.Date,
		"room":       b.RoomID,
		"time_range": b.TimeRange,
		"slot":       string(b.Slot()),
		"created":    stored == nil,
	})

	d.recordName(ctx, venue.KindScript, b.ScriptName)
	if b.Deposit.Label != "" {
		d.recordName(ctx, venue.KindLabel, b.Deposit.Label)
	}
	return nil
}

// recordName adds a script or waiver label to the venue's lists. The
// booking is already stored, so failures are only logged.
func (d *Desk) recordName(ctx context.Context, kind venue.NameKind, name string) {
	if d.store == nil {
		return
	}
	if err := d.store.AddName(ctx, kind, name); err != nil {
		d.log.Error("record "+string(kind), err)
	}
}

// Get returns a stored booking. It returns booking.ErrBookingNotFound when
// there is none.
func (d *Desk) Get(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := d.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading booking %s: %w", id, err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
	}
	return b, nil
}

// Delete removes a booking immediately.
func (d *Desk) Delete(ctx context.Context, id string) error {
	if err := d.repo.DeleteBooking(ctx, id); err != nil {
		if !errors.Is(err, booking.ErrBookingNotFound) {
			d.log.Error("delete booking", err)
		}
		return err
	}
	d.log.Log("BOOKING_DELETED", map[string]any{"id": id})
	return nil
}

// Day loads the bookings of one date.
func (d *Desk) Day(ctx context.Context, date string) (*booking.Day, error) {
	bookings, err := d.repo.ListBookingsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading bookings for %s: %w", date, err)
	}
	return booking.NewDay(date, bookings), nil
}
