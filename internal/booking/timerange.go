package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a day in minutes.
const MinutesPerDay = 24 * 60

// Slot boundaries, matched against the end of a range.
const (
	morningEnd   = 13 * 60    // 13:00
	afternoonEnd = 18*60 + 30 // 18:30
)

// Time parsing errors.
var (
	ErrInvalidTimeOfDay = errors.New("time must be in HH:MM format")
	ErrInvalidTimeRange = errors.New("time range must look like 13:00-17:00")
)

// Slot is one of the three fixed lanes of a day.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
)

// Slots returns the slots in lane order.
func Slots() []Slot {
	return []Slot{SlotMorning, SlotAfternoon, SlotEvening}
}

// ParseSlot parses a slot name, ignoring case.
func ParseSlot(s string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(s))) {
	case SlotMorning:
		return SlotMorning, nil
	case SlotAfternoon:
		return SlotAfternoon, nil
	case SlotEvening:
		return SlotEvening, nil
	default:
		return "", fmt.Errorf("unknown slot %q: must be morning, afternoon or evening", s)
	}
}

// Label returns the display label of the slot.
func (s Slot) Label() string {
	switch s {
	case SlotMorning:
		return "Morning"
	case SlotAfternoon:
		return "Afternoon"
	case SlotEvening:
		return "Evening"
	default:
		return string(s)
	}
}

// Interval is a parsed time range in minutes since midnight.
// End may exceed MinutesPerDay for sessions that run past midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals share any minute.
// An interval starting exactly when the other ends does not overlap it.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Minutes returns the length of the interval.
func (i Interval) Minutes() int {
	return i.End - i.Start
}

// Overnight reports whether the interval ends on the following day.
func (i Interval) Overnight() bool {
	return i.End > MinutesPerDay
}

// String renders the interval as "HH:MM-HH:MM".
func (i Interval) String() string {
	end := i.End
	if end > MinutesPerDay {
		end -= MinutesPerDay
	}
	return MinutesToTime(i.Start) + "-" + MinutesToTime(end)
}

// ParseTimeOfDay converts "HH:MM" (or "H:MM") to minutes since midnight.
// Both ':' and the full-width '：' are accepted as separator.
// "24:00" is allowed as an end-of-day marker.
func ParseTimeOfDay(text string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), "：", ":")
	hourPart, minPart, ok := strings.Cut(s, ":")
	if !ok || len(hourPart) == 0 || len(hourPart) > 2 || len(minPart) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, text)
	}

	hours, err := parseDigits(hourPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, text)
	}
	mins, err := parseDigits(minPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, text)
	}

	if mins > 59 || hours > 24 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidTimeOfDay, text)
	}
	return hours*60 + mins, nil
}

// parseDigits rejects signs and spaces that strconv.Atoi would accept.
func parseDigits(s string) (int, error) {
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseRange parses "HH:MM-HH:MM" into an Interval.
// If the end is before the start the end is moved to the next day.
func ParseRange(text string) (Interval, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("%w: got %q", ErrInvalidTimeRange, text)
	}

	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start: %w", ErrInvalidTimeRange, err)
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: end: %w", ErrInvalidTimeRange, err)
	}

	if end < start {
		end += MinutesPerDay
	}
	return Interval{Start: start, End: end}, nil
}

// ClassifySlot returns the slot a time range belongs to.
// Unparseable ranges fall back to the afternoon slot.
func ClassifySlot(text string) Slot {
	iv, err := ParseRange(text)
	if err != nil {
		return SlotAfternoon
	}
	return ClassifyInterval(iv)
}

// ClassifyInterval files an interval by when it ends: up to 13:00 is
// morning, up to 18:30 afternoon, anything later evening.
func ClassifyInterval(iv Interval) Slot {
	switch {
	case iv.End <= morningEnd:
		return SlotMorning
	case iv.End <= afternoonEnd:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}
