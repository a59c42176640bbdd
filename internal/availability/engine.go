package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
)

// DefaultSlotStep matches the booking form's 30-minute grid.
const DefaultSlotStep = 30 * time.Minute

// Store is the read-only view of the schedule data the engine needs.
// Implementations do the actual I/O; the engine only composes their
// snapshots.
type Store interface {
	// GetOpeningHours returns the configured window for the weekday,
	// nil if no row exists, or a NotFound error for an unknown barber.
	GetOpeningHours(ctx context.Context, barberID uuid.UUID, weekday time.Weekday) (*model.OpeningHours, error)
	GetConfirmedBookings(ctx context.Context, barberID uuid.UUID, date time.Time) ([]model.BookingObligation, error)
	GetActiveLunchBreaks(ctx context.Context, barberID uuid.UUID) ([]model.LunchBreak, error)
	GetHolidayRanges(ctx context.Context, barberID uuid.UUID) ([]model.Holiday, error)
}

// Config tunes the engine. Zero values fall back to defaults.
type Config struct {
	SlotStep time.Duration
	Now      func() time.Time
}

// Engine computes bookable start times for barbers. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	store Store
	step  time.Duration
	now   func() time.Time
}

func New(store Store, cfg Config) *Engine {
	step := cfg.SlotStep
	if step <= 0 {
		step = DefaultSlotStep
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, step: step, now: now}
}

// ResolveWindow returns the opening window for the barber on the
// given calendar date. A missing or closed weekday row yields a
// closed window, not an error.
func (e *Engine) ResolveWindow(ctx context.Context, barberID uuid.UUID, date time.Time) (Window, error) {
	hours, err := e.store.GetOpeningHours(ctx, barberID, date.Weekday())
	if err != nil {
		return Window{}, fmt.Errorf("failed to resolve opening hours: %w", err)
	}
	if hours == nil || !hours.IsOpen {
		return Closed(date), nil
	}
	return Window{
		Date:      model.DateOf(date),
		Open:      true,
		OpenTime:  hours.OpenTime,
		CloseTime: hours.CloseTime,
	}, nil
}

// CollectObligations gathers every interval that blocks time for the
// barber on the given date: confirmed bookings (using the duration
// snapshot captured at booking time), active lunch breaks, and, when
// the date falls inside a holiday range, one all-day interval
// spanning the opening window. An empty result is a normal outcome.
func (e *Engine) CollectObligations(ctx context.Context, barberID uuid.UUID, date time.Time, win Window) ([]Interval, error) {
	day := model.DateOf(date)

	holidays, err := e.store.GetHolidayRanges(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	for i := range holidays {
		if holidays[i].Covers(day) {
			// Holiday ranges are date-inclusive on both ends: the
			// whole day is blocked regardless of clock time.
			return []Interval{holidayInterval(barberID, day, win)}, nil
		}
	}

	bookings, err := e.store.GetConfirmedBookings(ctx, barberID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	lunches, err := e.store.GetActiveLunchBreaks(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lunch breaks: %w", err)
	}

	intervals := make([]Interval, 0, len(bookings)+len(lunches))
	for _, b := range bookings {
		start := b.Time.At(day)
		intervals = append(intervals, Interval{
			Start:    start,
			End:      start.Add(time.Duration(b.Duration) * time.Minute),
			Kind:     KindBooking,
			BarberID: barberID,
		})
	}
	for _, l := range lunches {
		start := l.StartTime.At(day)
		intervals = append(intervals, Interval{
			Start:    start,
			End:      start.Add(time.Duration(l.Duration) * time.Minute),
			Kind:     KindLunchBreak,
			BarberID: barberID,
		})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals, nil
}

func holidayInterval(barberID uuid.UUID, day time.Time, win Window) Interval {
	iv := Interval{
		Start:    day,
		End:      day.Add(24 * time.Hour),
		Kind:     KindClosedDay,
		BarberID: barberID,
	}
	if win.Open {
		iv.Start = win.OpenTime.At(day)
		iv.End = win.CloseTime.At(day)
	}
	return iv
}

// AvailableSlots returns the ordered bookable start times for the
// barber, date and service duration. The result may be empty; errors
// are storage failures or an unknown barber, never "no slots".
func (e *Engine) AvailableSlots(ctx context.Context, barberID uuid.UUID, date time.Time, duration time.Duration) ([]model.TimeOfDay, error) {
	win, obligations, err := e.snapshot(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	now := e.now()
	var free []model.TimeOfDay
	for _, t := range GenerateSlots(win, e.step) {
		res, err := Evaluate(Slot{Date: win.Date, Time: t}, duration, win, obligations, now)
		if err != nil {
			return nil, err
		}
		if res.Bookable {
			free = append(free, t)
		}
	}
	return free, nil
}

// HasAvailability reports whether the day has at least one bookable
// slot. It short-circuits on the first hit and agrees with
// AvailableSlots returning a non-empty result.
func (e *Engine) HasAvailability(ctx context.Context, barberID uuid.UUID, date time.Time, duration time.Duration) (bool, error) {
	win, obligations, err := e.snapshot(ctx, barberID, date)
	if err != nil {
		return false, err
	}

	now := e.now()
	for _, t := range GenerateSlots(win, e.step) {
		res, err := Evaluate(Slot{Date: win.Date, Time: t}, duration, win, obligations, now)
		if err != nil {
			return false, err
		}
		if res.Bookable {
			return true, nil
		}
	}
	return false, nil
}

// FullyBookedDays returns the dates within [from, from+days) that
// have no bookable slot at all, used to grey out calendar days. Each
// day is evaluated independently.
func (e *Engine) FullyBookedDays(ctx context.Context, barberID uuid.UUID, from time.Time, days int, duration time.Duration) ([]time.Time, error) {
	if days <= 0 {
		return nil, nil
	}

	start := model.DateOf(from)
	var full []time.Time
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		ok, err := e.HasAvailability(ctx, barberID, day, duration)
		if err != nil {
			return nil, err
		}
		if !ok {
			full = append(full, day)
		}
	}
	return full, nil
}

// IsSlotBookable validates one caller-supplied start time against all
// constraints. This is the final pre-commit check on the booking
// write path, so the time need not come from the slot generator.
func (e *Engine) IsSlotBookable(ctx context.Context, barberID uuid.UUID, date time.Time, t model.TimeOfDay, duration time.Duration) (*Result, error) {
	win, obligations, err := e.snapshot(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	return Evaluate(Slot{Date: win.Date, Time: t}, duration, win, obligations, e.now())
}

func (e *Engine) snapshot(ctx context.Context, barberID uuid.UUID, date time.Time) (Window, []Interval, error) {
	win, err := e.ResolveWindow(ctx, barberID, date)
	if err != nil {
		return Window{}, nil, err
	}

	obligations, err := e.CollectObligations(ctx, barberID, date, win)
	if err != nil {
		return Window{}, nil, err
	}
	return win, obligations, nil
}
