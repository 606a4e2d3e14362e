package scheduler

import (
	"context"
	"fmt"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/dateutil"
)

// FreeSlot is a lane with no booking in the room.
type FreeSlot struct {
	Date  string
	Slot  booking.Slot
	Range string // prefill range for the slot
}

// laneLister is implemented by stores that can answer lane queries
// without loading whole bookings.
type laneLister interface {
	ListRoomLanes(ctx context.Context, roomID, start, end string) ([]booking.Lane, error)
}

// FreeSlots lists every (date, slot) lane in month ("YYYY-MM") where
// roomID has nothing filed. A free lane may still be partly blocked by a
// booking that runs long; Check has the final word.
func (d *Desk) FreeSlots(ctx context.Context, roomID, month string) ([]FreeSlot, error) {
	days, err := dateutil.MonthDays(month)
	if err != nil {
		return nil, err
	}
	start, end := days[0], days[len(days)-1]

	busy, err := d.busyLanes(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}

	var free []FreeSlot
	for _, date := range days {
		for _, slot := range booking.Slots() {
			if busy[booking.Lane{Date: date, Slot: slot}] {
				continue
			}
			free = append(free, FreeSlot{Date: date, Slot: slot, Range: d.DefaultRange(slot)})
		}
	}
	return free, nil
}

func (d *Desk) busyLanes(ctx context.Context, roomID, start, end string) (map[booking.Lane]bool, error) {
	busy := make(map[booking.Lane]bool)

	if ll, ok := d.repo.(laneLister); ok {
		lanes, err := ll.ListRoomLanes(ctx, roomID, start, end)
		if err != nil {
			return nil, fmt.Errorf("loading lanes: %w", err)
		}
		for _, l := range lanes {
			busy[l] = true
		}
		return busy, nil
	}

	bookings, err := d.repo.ListBookingsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading bookings: %w", err)
	}
	for _, b := range bookings {
		if b.RoomID == roomID {
			busy[booking.Lane{Date: b.Date, Slot: b.Slot()}] = true
		}
	}
	return busy, nil
}
