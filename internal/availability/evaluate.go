package availability

import (
	"time"

	"github.com/qdbs/booking-api/internal/model"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

// Reason says why a candidate slot is not bookable.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonClosed     Reason = "opening_closed"
	ReasonOverlap    Reason = "overlap"
	ReasonPastCutoff Reason = "past_cutoff"
)

// Slot is a candidate appointment start: a calendar date plus a time
// of day. Slots are ephemeral; they are never persisted.
type Slot struct {
	Date time.Time       `json:"date"`
	Time model.TimeOfDay `json:"time"`
}

// Result is the outcome of evaluating one candidate slot.
type Result struct {
	Slot     Slot   `json:"slot"`
	Bookable bool   `json:"bookable"`
	Reason   Reason `json:"reason,omitempty"`
}

// Evaluate decides whether a candidate slot of the given duration is
// bookable against the opening window and the collected obligations.
// It is a pure function and the single authority on overlap
// semantics: every caller, including the pre-commit booking check,
// goes through here.
func Evaluate(slot Slot, duration time.Duration, win Window, obligations []Interval, now time.Time) (*Result, error) {
	if duration <= 0 {
		return nil, apperrors.InvalidArgument("service duration must be positive", nil)
	}

	start := slot.Time
	end := slot.Time.Add(duration)

	if !win.Contains(start, end) {
		return blocked(slot, ReasonClosed), nil
	}

	startAt := start.At(slot.Date)
	if !startAt.After(now) {
		return blocked(slot, ReasonPastCutoff), nil
	}

	endAt := startAt.Add(duration)
	for _, ob := range obligations {
		if !ob.Overlaps(startAt, endAt) {
			continue
		}
		// A holiday blocks the whole day; report it as the shop being
		// closed rather than a clash with another appointment.
		if ob.Kind == KindClosedDay || ob.Kind == KindHoliday {
			return blocked(slot, ReasonClosed), nil
		}
		return blocked(slot, ReasonOverlap), nil
	}

	return &Result{Slot: slot, Bookable: true}, nil
}

func blocked(slot Slot, reason Reason) *Result {
	return &Result{Slot: slot, Bookable: false, Reason: reason}
}
