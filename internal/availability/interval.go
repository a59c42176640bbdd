package availability

import (
	"time"

	"github.com/google/uuid"
)

// IntervalKind says which obligation an interval came from.
type IntervalKind string

const (
	KindBooking    IntervalKind = "booking"
	KindLunchBreak IntervalKind = "lunch_break"
	KindHoliday    IntervalKind = "holiday"
	KindClosedDay  IntervalKind = "closed_day"
)

// Interval is a half-open [Start, End) time obligation owned by one
// barber. An interval ending at 14:00 does not block a slot starting
// at 14:00.
type Interval struct {
	Start    time.Time    `json:"start"`
	End      time.Time    `json:"end"`
	Kind     IntervalKind `json:"kind"`
	BarberID uuid.UUID    `json:"barber_id"`
}

// Overlaps is the standard half-open overlap test: two ranges overlap
// iff each starts before the other ends. Touching endpoints do not
// overlap, so back-to-back bookings with zero gap are legal.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}
