package scheduler

import (
	"errors"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/dateutil"
)

// rejections are the errors caused by the booking itself rather than by
// storage.
var rejections = []error{
	booking.ErrEmptyDate,
	booking.ErrEmptyRoom,
	booking.ErrEmptyTimeRange,
	booking.ErrZeroLengthRange,
	booking.ErrEmptyScript,
	booking.ErrEmptyOrganizer,
	booking.ErrNoDM,
	booking.ErrNegativeDeposit,
	booking.ErrAmbiguousDeposit,
	booking.ErrInvalidTimeRange,
	booking.ErrInvalidTimeOfDay,
	dateutil.ErrInvalidDateFormat,
}

// IsRejection reports whether err means the booking itself is unacceptable:
// a validation failure, a malformed time range, or a conflict.
func IsRejection(err error) bool {
	var c *booking.Conflict
	if errors.As(err, &c) {
		return true
	}
	return isRejection(err)
}

func isRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
