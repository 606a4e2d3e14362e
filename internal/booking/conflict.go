package booking

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultPendingName marks a staff seat that has not been assigned yet.
const DefaultPendingName = "TBD"

// Conflict errors. A *Conflict unwraps to one of these.
var (
	ErrRoomConflict   = errors.New("room conflict")
	ErrScriptConflict = errors.New("script already scheduled this slot")
	ErrStaffConflict  = errors.New("staff double-booked")
)

// ConflictKind identifies which scheduling rule blocked a booking.
type ConflictKind string

const (
	ConflictRoom   ConflictKind = "room"
	ConflictScript ConflictKind = "script"
	ConflictStaff  ConflictKind = "staff"
)

// Conflict describes the first existing booking that blocks a candidate.
type Conflict struct {
	Kind     ConflictKind
	Existing *Booking
	Person   string // set for staff conflicts
}

// Error implements error using room IDs. Use Explain to show room names.
func (c *Conflict) Error() string {
	return c.Explain(nil)
}

// Unwrap returns the sentinel error for the conflict kind.
func (c *Conflict) Unwrap() error {
	switch c.Kind {
	case ConflictRoom:
		return ErrRoomConflict
	case ConflictScript:
		return ErrScriptConflict
	default:
		return ErrStaffConflict
	}
}

// Explain renders the conflict for the person filling in the form.
// roomName resolves room IDs to display names; nil prints the ID.
func (c *Conflict) Explain(roomName func(id string) string) string {
	room := c.Existing.RoomID
	if roomName != nil {
		room = roomName(room)
	}
	switch c.Kind {
	case ConflictRoom:
		return fmt.Sprintf("%s: %s is taken by %q (%s)",
			ErrRoomConflict, room, c.Existing.ScriptName, c.Existing.TimeRange)
	case ConflictScript:
		return fmt.Sprintf("%s: %q already runs in %s (%s)",
			ErrScriptConflict, c.Existing.ScriptName, room, c.Existing.TimeRange)
	default:
		return fmt.Sprintf("%s: %s is already on %q in %s (%s)",
			ErrStaffConflict, c.Person, c.Existing.ScriptName, room, c.Existing.TimeRange)
	}
}

// Detector checks candidate bookings against the existing collection.
// A Detector is immutable once built and safe for concurrent use.
type Detector struct {
	pending map[string]bool
}

// NewDetector creates a Detector treating the given names as pending
// sentinels. With no names it uses DefaultPendingName.
func NewDetector(pending ...string) *Detector {
	if len(pending) == 0 {
		pending = []string{DefaultPendingName}
	}
	d := &Detector{pending: make(map[string]bool, len(pending))}
	for _, p := range pending {
		if p = strings.TrimSpace(p); p != "" {
			d.pending[p] = true
		}
	}
	return d
}

var defaultDetector = NewDetector()

// IsPending reports whether name is an unassigned-seat sentinel.
func (d *Detector) IsPending(name string) bool {
	if d == nil {
		d = defaultDetector
	}
	return d.pending[strings.TrimSpace(name)]
}

// PendingNames returns the sentinel names, sorted.
func (d *Detector) PendingNames() []string {
	if d == nil {
		d = defaultDetector
	}
	names := make([]string, 0, len(d.pending))
	for n := range d.pending {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// CheckConflicts runs the default detector.
func CheckConflicts(candidate *Booking, all []*Booking) (*Conflict, error) {
	return defaultDetector.Check(candidate, all)
}

// Check reports the first existing booking on the candidate's date that
// overlaps it and shares its room, its script, or a staff member, checked
// in that order for each overlapping booking.
//
// It returns ErrInvalidTimeRange when the candidate's own range cannot be
// parsed. Existing bookings with unparseable ranges are skipped, as is the
// stored copy of the candidate itself (same ID).
// A nil conflict and nil error means the candidate may be saved.
func (d *Detector) Check(candidate *Booking, all []*Booking) (*Conflict, error) {
	if d == nil {
		d = defaultDetector
	}

	want, err := ParseRange(candidate.TimeRange)
	if err != nil {
		return nil, err
	}

	script := strings.TrimSpace(candidate.ScriptName)
	staff := d.staffSet(candidate)

	for _, b := range all {
		if b == nil || b.Date != candidate.Date {
			continue
		}
		if candidate.ID != "" && b.ID == candidate.ID {
			continue
		}
		got, err := ParseRange(b.TimeRange)
		if err != nil {
			continue
		}
		if !want.Overlaps(got) {
			continue
		}

		if b.RoomID == candidate.RoomID {
			return &Conflict{Kind: ConflictRoom, Existing: b}, nil
		}
		if strings.TrimSpace(b.ScriptName) == script {
			return &Conflict{Kind: ConflictScript, Existing: b}, nil
		}
		if person, ok := d.sharedStaff(staff, b); ok {
			return &Conflict{Kind: ConflictStaff, Existing: b, Person: person}, nil
		}
	}
	return nil, nil
}

// staffSet collects the candidate's real staff names in form order.
func (d *Detector) staffSet(b *Booking) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range b.Staff() {
		n = strings.TrimSpace(n)
		if n == "" || d.pending[n] || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

// sharedStaff returns the first candidate staff member also working b.
func (d *Detector) sharedStaff(staff []string, b *Booking) (string, bool) {
	if len(staff) == 0 {
		return "", false
	}
	other := make(map[string]bool)
	for _, n := range d.staffSet(b) {
		other[n] = true
	}
	for _, n := range staff {
		if other[n] {
			return n, true
		}
	}
	return "", false
}
