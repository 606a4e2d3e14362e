// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// SQLite implements booking.Repository and venue.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

var (
	_ booking.Repository = (*SQLite)(nil)
	_ venue.Store        = (*SQLite)(nil)
)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const bookingColumns = `
	id, date, room_id, time_range, script_name, dms, npcs,
	organizer_name, organizer_contact, notes, deposit_amount, deposit_label,
	created_at, updated_at`

// CreateBooking adds a new booking.
// Returns booking.ErrDuplicateBooking if the ID is already stored.
func (s *SQLite) CreateBooking(ctx context.Context, b *booking.Booking) error {
	if b.ID == "" {
		return errors.New("booking id is required")
	}
	enc, err := encodeBooking(b)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ?`, b.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking booking id: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", booking.ErrDuplicateBooking, b.ID)
	}

	query := `
		INSERT INTO bookings (
			id, date, room_id, time_range, slot, script_name, dms, npcs,
			organizer_name, organizer_contact, notes, deposit_amount, deposit_label,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		b.ID, b.Date, b.RoomID, b.TimeRange, enc.slot, b.ScriptName, enc.dms, enc.npcs,
		b.OrganizerName, b.OrganizerContact, b.Notes, b.Deposit.Amount, b.Deposit.Label,
		enc.createdAt, enc.updatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateBooking replaces every field of the stored booking except CreatedAt.
func (s *SQLite) UpdateBooking(ctx context.Context, b *booking.Booking) error {
	enc, err := encodeBooking(b)
	if err != nil {
		return err
	}

	query := `
		UPDATE bookings SET
			date = ?, room_id = ?, time_range = ?, slot = ?, script_name = ?,
			dms = ?, npcs = ?, organizer_name = ?, organizer_contact = ?, notes = ?,
			deposit_amount = ?, deposit_label = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		b.Date, b.RoomID, b.TimeRange, enc.slot, b.ScriptName, enc.dms, enc.npcs,
		b.OrganizerName, b.OrganizerContact, b.Notes, b.Deposit.Amount, b.Deposit.Label,
		enc.updatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", booking.ErrBookingNotFound, b.ID)
	}
	return nil
}

// DeleteBooking removes a booking immediately.
func (s *SQLite) DeleteBooking(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", booking.ErrBookingNotFound, id)
	}
	return nil
}

// GetBooking retrieves a booking by ID.
func (s *SQLite) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	b, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying booking: %w", err)
	}
	return b, nil
}

// ListBookingsByDate returns all bookings on date in insertion order.
func (s *SQLite) ListBookingsByDate(ctx context.Context, date string) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE date = ? ORDER BY rowid`
	return s.queryBookings(ctx, query, date)
}

// ListBookingsByDateRange returns all bookings between start and end (inclusive).
func (s *SQLite) ListBookingsByDateRange(ctx context.Context, start, end string) ([]*booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date >= ? AND date <= ?
		ORDER BY date, rowid
	`
	return s.queryBookings(ctx, query, start, end)
}

// ListAllBookings returns every stored booking.
func (s *SQLite) ListAllBookings(ctx context.Context) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY date, rowid`
	return s.queryBookings(ctx, query)
}

// ListRoomLanes returns the distinct lanes roomID has bookings in between
// start and end (inclusive), ordered by date and slot.
func (s *SQLite) ListRoomLanes(ctx context.Context, roomID, start, end string) ([]booking.Lane, error) {
	query := `
		SELECT DISTINCT date, slot
		FROM bookings
		WHERE room_id = ? AND date >= ? AND date <= ?
		ORDER BY date, slot
	`
	rows, err := s.db.QueryContext(ctx, query, roomID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying lanes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lanes []booking.Lane
	for rows.Next() {
		var l booking.Lane
		if err := rows.Scan(&l.Date, &l.Slot); err != nil {
			return nil, fmt.Errorf("scanning lane: %w", err)
		}
		lanes = append(lanes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lanes: %w", err)
	}
	return lanes, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) queryBookings(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return bookings, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (*booking.Booking, error) {
	var (
		b         booking.Booking
		dms, npcs string
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&b.ID,
		&b.Date,
		&b.RoomID,
		&b.TimeRange,
		&b.ScriptName,
		&dms,
		&npcs,
		&b.OrganizerName,
		&b.OrganizerContact,
		&b.Notes,
		&b.Deposit.Amount,
		&b.Deposit.Label,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if b.DMs, err = decodeNames(dms); err != nil {
		return nil, fmt.Errorf("decoding dms of %s: %w", b.ID, err)
	}
	if b.NPCs, err = decodeNames(npcs); err != nil {
		return nil, fmt.Errorf("decoding npcs of %s: %w", b.ID, err)
	}
	if b.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if b.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}
	return &b, nil
}

// encodedBooking holds the column values that need conversion.
type encodedBooking struct {
	slot      string
	dms       string
	npcs      string
	createdAt string
	updatedAt string
}

// encodeBooking derives the slot column from the time range and encodes
// staff lists as JSON arrays.
func encodeBooking(b *booking.Booking) (encodedBooking, error) {
	dms, err := encodeNames(b.DMs)
	if err != nil {
		return encodedBooking{}, fmt.Errorf("encoding dms: %w", err)
	}
	npcs, err := encodeNames(b.NPCs)
	if err != nil {
		return encodedBooking{}, fmt.Errorf("encoding npcs: %w", err)
	}

	created := b.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := b.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	return encodedBooking{
		slot:      string(b.Slot()),
		dms:       dms,
		npcs:      npcs,
		createdAt: created.Format(time.RFC3339Nano),
		updatedAt: updated.Format(time.RFC3339Nano),
	}, nil
}

func encodeNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeNames(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(s), &names); err != nil {
		return nil, err
	}
	return names, nil
}

// parseTimestamp parses the timestamp formats stored by this package and
// by older databases.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
