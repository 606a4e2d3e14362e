package scheduler

import (
	"context"
	"fmt"

	"github.com/javiermolinar/larpcal/internal/booking"
)

// Skipped is a booking that could not be imported.
type Skipped struct {
	Booking *booking.Booking
	Reason  error
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Imported int
	Skipped  []Skipped
}

// Import saves bookings from another calendar one by one through the same
// checks as a form submission. Bookings that fail validation, conflict with
// an earlier one, or reuse a stored ID are skipped. Only storage failures
// abort the run.
func (d *Desk) Import(ctx context.Context, bookings []*booking.Booking) (ImportResult, error) {
	var result ImportResult
	for _, src := range bookings {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		b := src.Clone()

		if b.ID != "" {
			stored, err := d.repo.GetBooking(ctx, b.ID)
			if err != nil {
				return result, fmt.Errorf("loading booking %s: %w", b.ID, err)
			}
			if stored != nil {
				result.Skipped = append(result.Skipped, Skipped{Booking: src, Reason: booking.ErrDuplicateBooking})
				continue
			}
		}

		conflict, err := d.Check(ctx, b)
		if err != nil {
			if isRejection(err) {
				result.Skipped = append(result.Skipped, Skipped{Booking: src, Reason: err})
				continue
			}
			return result, err
		}
		if conflict != nil {
			result.Skipped = append(result.Skipped, Skipped{Booking: src, Reason: conflict})
			continue
		}

		if err := d.Save(ctx, b); err != nil {
			return result, err
		}
		result.Imported++
	}

	d.log.Log("IMPORT_DONE", map[string]any{
		"imported": result.Imported,
		"skipped":  len(result.Skipped),
	})
	return result, nil
}
