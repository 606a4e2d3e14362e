package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// memRepo is an in-memory booking.Repository keeping insertion order.
type memRepo struct {
	bookings []*booking.Booking
	failList error
}

func (r *memRepo) CreateBooking(_ context.Context, b *booking.Booking) error {
	for _, existing := range r.bookings {
		if existing.ID == b.ID {
			return booking.ErrDuplicateBooking
		}
	}
	r.bookings = append(r.bookings, b.Clone())
	return nil
}

func (r *memRepo) UpdateBooking(_ context.Context, b *booking.Booking) error {
	for i, existing := range r.bookings {
		if existing.ID == b.ID {
			r.bookings[i] = b.Clone()
			return nil
		}
	}
	return booking.ErrBookingNotFound
}

func (r *memRepo) DeleteBooking(_ context.Context, id string) error {
	for i, existing := range r.bookings {
		if existing.ID == id {
			r.bookings = slices.Delete(r.bookings, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
}

func (r *memRepo) GetBooking(_ context.Context, id string) (*booking.Booking, error) {
	for _, existing := range r.bookings {
		if existing.ID == id {
			return existing.Clone(), nil
		}
	}
	return nil, nil
}

func (r *memRepo) ListBookingsByDate(_ context.Context, date string) ([]*booking.Booking, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			result = append(result, b.Clone())
		}
	}
	return result, nil
}

func (r *memRepo) ListBookingsByDateRange(_ context.Context, start, end string) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for _, b := range r.bookings {
		if b.Date >= start && b.Date <= end {
			result = append(result, b.Clone())
		}
	}
	return result, nil
}

func (r *memRepo) ListAllBookings(_ context.Context) ([]*booking.Booking, error) {
	result := make([]*booking.Booking, len(r.bookings))
	for i, b := range r.bookings {
		result[i] = b.Clone()
	}
	return result, nil
}

func (r *memRepo) Close() error { return nil }

// memStore records names added to the venue lists.
type memStore struct {
	names map[venue.NameKind][]string
	fail  bool
}

func (s *memStore) LoadSettings(context.Context) (*venue.Settings, error) {
	return &venue.Settings{Scripts: s.names[venue.KindScript]}, nil
}

func (s *memStore) SaveRoom(context.Context, venue.Room) error { return nil }

func (s *memStore) DeleteRoom(context.Context, string) error { return nil }

func (s *memStore) AddName(_ context.Context, kind venue.NameKind, name string) error {
	if s.fail {
		return errors.New("store unavailable")
	}
	if s.names == nil {
		s.names = make(map[venue.NameKind][]string)
	}
	if !slices.Contains(s.names[kind], name) {
		s.names[kind] = append(s.names[kind], name)
	}
	return nil
}

func (s *memStore) RemoveName(context.Context, venue.NameKind, string) error { return nil }

func (s *memStore) SetHoliday(context.Context, string, bool) error { return nil }
