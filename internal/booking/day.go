package booking

import (
	"slices"
	"strings"
)

// Lane is one slot of one date, the unit a room is booked in.
type Lane struct {
	Date string
	Slot Slot
}

// Day holds all bookings for a single date, grouped into lanes.
type Day struct {
	Date     string
	bookings []*Booking // sorted by start minute
}

// NewDay creates a Day from bookings, keeping only those on date.
func NewDay(date string, bookings []*Booking) *Day {
	d := &Day{Date: date}
	for _, b := range bookings {
		if b != nil && b.Date == date {
			d.bookings = append(d.bookings, b)
		}
	}
	slices.SortStableFunc(d.bookings, compareStart)
	return d
}

// Bookings returns a copy of the day's bookings.
func (d *Day) Bookings() []*Booking {
	return slices.Clone(d.bookings)
}

// Len returns the number of bookings on the day.
func (d *Day) Len() int {
	return len(d.bookings)
}

// Lane returns the bookings filed under slot in roomID.
func (d *Day) Lane(slot Slot, roomID string) []*Booking {
	var result []*Booking
	for _, b := range d.bookings {
		if b.RoomID == roomID && b.Slot() == slot {
			result = append(result, b)
		}
	}
	return result
}

// Slot returns all bookings filed under slot, across rooms.
func (d *Day) Slot(slot Slot) []*Booking {
	var result []*Booking
	for _, b := range d.bookings {
		if b.Slot() == slot {
			result = append(result, b)
		}
	}
	return result
}

// RoomIDs returns the distinct rooms used on the day, in first-use order.
func (d *Day) RoomIDs() []string {
	var ids []string
	for _, b := range d.bookings {
		if !slices.Contains(ids, b.RoomID) {
			ids = append(ids, b.RoomID)
		}
	}
	return ids
}

// compareStart orders bookings by start minute; unparseable ranges sort last
// by their raw text.
func compareStart(a, b *Booking) int {
	ia, errA := a.Interval()
	ib, errB := b.Interval()
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a.TimeRange, b.TimeRange)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	if ia.Start != ib.Start {
		return ia.Start - ib.Start
	}
	return ia.End - ib.End
}
