// Package booking defines the core domain types for larpcal: bookings,
// the time model that files them into slots, and the conflict detector
// that decides whether a booking may be saved.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/larpcal/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyDate        = errors.New("date is required")
	ErrEmptyRoom        = errors.New("room is required")
	ErrEmptyTimeRange   = errors.New("time range is required")
	ErrZeroLengthRange  = errors.New("time range must end after it starts")
	ErrEmptyScript      = errors.New("script is required")
	ErrEmptyOrganizer   = errors.New("organizer is required")
	ErrNoDM             = errors.New("at least one DM is required")
	ErrNegativeDeposit  = errors.New("deposit amount cannot be negative")
	ErrAmbiguousDeposit = errors.New("deposit must be either an amount or a waiver label, not both")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDuplicateBooking = errors.New("booking id already exists")
)

// Deposit is either a paid amount or a named waiver reason.
type Deposit struct {
	Amount int
	Label  string
}

// String renders the deposit for display.
func (d Deposit) String() string {
	if d.Label != "" {
		return d.Label
	}
	return fmt.Sprintf("%d", d.Amount)
}

// Booking is a room reservation for one game session.
type Booking struct {
	ID               string
	Date             string // "YYYY-MM-DD"
	RoomID           string
	TimeRange        string // "HH:MM-HH:MM", may wrap past midnight
	ScriptName       string
	DMs              []string
	NPCs             []string
	OrganizerName    string
	OrganizerContact string
	Notes            string
	Deposit          Deposit
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Fields holds the form values used to build a booking.
type Fields struct {
	Date             string
	RoomID           string
	TimeRange        string
	ScriptName       string
	DMs              []string
	NPCs             []string
	OrganizerName    string
	OrganizerContact string
	Notes            string
	Deposit          Deposit
}

// New creates a validated booking with a fresh ID.
func New(f Fields) (*Booking, error) {
	now := time.Now()
	b := &Booking{
		Date:             f.Date,
		RoomID:           f.RoomID,
		TimeRange:        f.TimeRange,
		ScriptName:       f.ScriptName,
		DMs:              f.DMs,
		NPCs:             f.NPCs,
		OrganizerName:    f.OrganizerName,
		OrganizerContact: f.OrganizerContact,
		Notes:            f.Notes,
		Deposit:          f.Deposit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.AssignID()
	return b, nil
}

// Normalize trims every text field and drops blank staff names.
// Bookings edited in place must be normalized before they are checked.
func (b *Booking) Normalize() {
	b.ID = strings.TrimSpace(b.ID)
	b.Date = strings.TrimSpace(b.Date)
	b.RoomID = strings.TrimSpace(b.RoomID)
	b.TimeRange = strings.TrimSpace(b.TimeRange)
	b.ScriptName = strings.TrimSpace(b.ScriptName)
	b.DMs = cleanNames(b.DMs)
	b.NPCs = cleanNames(b.NPCs)
	b.OrganizerName = strings.TrimSpace(b.OrganizerName)
	b.OrganizerContact = strings.TrimSpace(b.OrganizerContact)
	b.Notes = strings.TrimSpace(b.Notes)
	b.Deposit.Label = strings.TrimSpace(b.Deposit.Label)
}

// AssignID gives the booking a random ID if it has none.
func (b *Booking) AssignID() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
}

// Validate checks that all required fields are present and well formed.
// It does not look at other bookings; see Detector for that.
func (b *Booking) Validate() error {
	if b.Date == "" {
		return ErrEmptyDate
	}
	if _, err := dateutil.ParseDay(b.Date); err != nil {
		return err
	}
	if b.RoomID == "" {
		return ErrEmptyRoom
	}
	if strings.TrimSpace(b.TimeRange) == "" {
		return ErrEmptyTimeRange
	}
	iv, err := ParseRange(b.TimeRange)
	if err != nil {
		return err
	}
	if iv.Minutes() == 0 {
		return ErrZeroLengthRange
	}
	if strings.TrimSpace(b.ScriptName) == "" {
		return ErrEmptyScript
	}
	if strings.TrimSpace(b.OrganizerName) == "" {
		return ErrEmptyOrganizer
	}
	if len(cleanNames(b.DMs)) == 0 {
		return ErrNoDM
	}
	if b.Deposit.Amount < 0 {
		return ErrNegativeDeposit
	}
	if b.Deposit.Amount > 0 && b.Deposit.Label != "" {
		return ErrAmbiguousDeposit
	}
	return nil
}

// Slot returns the lane the booking is filed under.
// It is always derived from TimeRange.
func (b *Booking) Slot() Slot {
	return ClassifySlot(b.TimeRange)
}

// Interval parses the booking's time range.
func (b *Booking) Interval() (Interval, error) {
	return ParseRange(b.TimeRange)
}

// Staff returns the DMs followed by the NPCs.
func (b *Booking) Staff() []string {
	staff := make([]string, 0, len(b.DMs)+len(b.NPCs))
	staff = append(staff, b.DMs...)
	return append(staff, b.NPCs...)
}

// HasPendingStaff reports whether any DM or NPC seat is still unassigned.
func (b *Booking) HasPendingStaff(d *Detector) bool {
	for _, name := range b.Staff() {
		if d.IsPending(name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the booking.
func (b *Booking) Clone() *Booking {
	c := *b
	c.DMs = append([]string(nil), b.DMs...)
	c.NPCs = append([]string(nil), b.NPCs...)
	return &c
}

// cleanNames trims names and drops blanks, keeping order.
func cleanNames(names []string) []string {
	result := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			result = append(result, n)
		}
	}
	return result
}
