package booking

import "context"

// Repository defines the storage interface for bookings.
type Repository interface {
	// CreateBooking adds a new booking. Returns ErrDuplicateBooking if the ID is taken.
	CreateBooking(ctx context.Context, b *Booking) error

	// UpdateBooking replaces the stored booking with the same ID.
	// Returns ErrBookingNotFound if there is none.
	UpdateBooking(ctx context.Context, b *Booking) error

	// DeleteBooking removes a booking by ID.
	// Returns ErrBookingNotFound if there is none.
	DeleteBooking(ctx context.Context, id string) error

	// GetBooking retrieves a booking by ID. Returns nil, nil if not found.
	GetBooking(ctx context.Context, id string) (*Booking, error)

	// ListBookingsByDate returns all bookings on date ("YYYY-MM-DD").
	ListBookingsByDate(ctx context.Context, date string) ([]*Booking, error)

	// ListBookingsByDateRange returns all bookings between start and end (inclusive).
	ListBookingsByDateRange(ctx context.Context, start, end string) ([]*Booking, error)

	// ListAllBookings returns every stored booking.
	ListAllBookings(ctx context.Context) ([]*Booking, error)

	// Close releases any resources held by the repository.
	Close() error
}
