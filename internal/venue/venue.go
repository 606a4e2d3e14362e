// Package venue holds the reference lists staff pick from when filling in
// a booking: rooms, known scripts, DMs, NPCs and holidays.
package venue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/larpcal/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyRoomID   = errors.New("room id is required")
	ErrEmptyRoomName = errors.New("room name is required")
	ErrEmptyName     = errors.New("name is required")
	ErrUnknownKind   = errors.New("unknown name kind")
	ErrRoomNotFound  = errors.New("room not found")
)

// Room is a bookable space in the venue.
type Room struct {
	ID       string
	Name     string
	Capacity int
}

// Validate checks the room's required fields.
func (r Room) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyRoomID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyRoomName
	}
	if r.Capacity < 0 {
		return fmt.Errorf("room %s: capacity cannot be negative", r.ID)
	}
	return nil
}

// NameKind selects one of the name lists.
type NameKind string

const (
	KindScript NameKind = "script"
	KindDM     NameKind = "dm"
	KindNPC    NameKind = "npc"
	KindLabel  NameKind = "label" // deposit waiver labels
)

// NameKinds returns every name list kind.
func NameKinds() []NameKind {
	return []NameKind{KindScript, KindDM, KindNPC, KindLabel}
}

// ParseNameKind parses a name list kind.
func ParseNameKind(s string) (NameKind, error) {
	switch k := NameKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindScript, KindDM, KindNPC, KindLabel:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// DayKind describes what sort of day a date is for the venue.
type DayKind string

const (
	DayWeekday  DayKind = "weekday"
	DaySaturday DayKind = "saturday"
	DaySunday   DayKind = "sunday"
	DayHoliday  DayKind = "holiday"
)

// Settings is a snapshot of every reference list.
type Settings struct {
	Rooms    []Room
	Scripts  []string
	DMs      []string
	NPCs     []string
	Labels   []string // deposit waiver labels
	Holidays []string // "YYYY-MM-DD", sorted
}

// Names returns the list for kind.
func (s *Settings) Names(kind NameKind) []string {
	switch kind {
	case KindScript:
		return s.Scripts
	case KindDM:
		return s.DMs
	case KindNPC:
		return s.NPCs
	case KindLabel:
		return s.Labels
	default:
		return nil
	}
}

// Room looks up a room by ID.
func (s *Settings) Room(id string) (Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// RoomName returns the display name of a room, or the ID itself for rooms
// that have been removed since the booking was made.
func (s *Settings) RoomName(id string) string {
	if r, ok := s.Room(id); ok {
		return r.Name
	}
	return id
}

// RoomIDs returns the configured room IDs in display order.
func (s *Settings) RoomIDs() []string {
	ids := make([]string, len(s.Rooms))
	for i, r := range s.Rooms {
		ids[i] = r.ID
	}
	return ids
}

// IsHoliday reports whether date is marked as a holiday.
func (s *Settings) IsHoliday(date string) bool {
	_, found := slices.BinarySearch(s.Holidays, date)
	return found
}

// DayKind classifies date. Holidays take precedence over weekends.
func (s *Settings) DayKind(date string) (DayKind, error) {
	t, err := dateutil.ParseDay(date)
	if err != nil {
		return "", err
	}
	if s.IsHoliday(date) {
		return DayHoliday, nil
	}
	switch t.Weekday() {
	case time.Saturday:
		return DaySaturday, nil
	case time.Sunday:
		return DaySunday, nil
	default:
		return DayWeekday, nil
	}
}

// Store persists venue settings.
type Store interface {
	// LoadSettings returns every reference list.
	LoadSettings(ctx context.Context) (*Settings, error)

	// SaveRoom creates or replaces a room.
	SaveRoom(ctx context.Context, r Room) error

	// DeleteRoom removes a room. Bookings keep their room ID.
	// Returns ErrRoomNotFound if there is none.
	DeleteRoom(ctx context.Context, id string) error

	// AddName adds a name to a list. Adding an existing name is a no-op.
	AddName(ctx context.Context, kind NameKind, name string) error

	// RemoveName removes a name from a list.
	RemoveName(ctx context.Context, kind NameKind, name string) error

	// SetHoliday marks or unmarks date as a holiday.
	SetHoliday(ctx context.Context, date string, holiday bool) error
}

// CleanName trims a name and rejects blanks.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
