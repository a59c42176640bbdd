package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qdbs/booking-api/internal/model"
)

func window(openH, openM, closeH, closeM int) Window {
	return Window{
		Date:      testDay,
		Open:      true,
		OpenTime:  model.NewTimeOfDay(openH, openM),
		CloseTime: model.NewTimeOfDay(closeH, closeM),
	}
}

func obligation(kind IntervalKind, startH, startM int, d time.Duration) Interval {
	start := model.NewTimeOfDay(startH, startM).At(testDay)
	return Interval{Start: start, End: start.Add(d), Kind: kind, BarberID: testBarber}
}

func TestEvaluate_HalfOpenBoundaries(t *testing.T) {
	win := window(9, 0, 17, 0)
	booked := []Interval{obligation(KindBooking, 10, 0, 30*time.Minute)}

	cases := []struct {
		name     string
		slot     model.TimeOfDay
		bookable bool
		reason   Reason
	}{
		{"ends exactly at obligation start", model.NewTimeOfDay(9, 30), true, ReasonNone},
		{"starts exactly at obligation end", model.NewTimeOfDay(10, 30), true, ReasonNone},
		{"same start", model.NewTimeOfDay(10, 0), false, ReasonOverlap},
		{"straddles obligation start", model.NewTimeOfDay(9, 45), false, ReasonOverlap},
		{"straddles obligation end", model.NewTimeOfDay(10, 15), false, ReasonOverlap},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Evaluate(Slot{Date: testDay, Time: tc.slot}, 30*time.Minute, win, booked, dayBefore)
			require.NoError(t, err)
			assert.Equal(t, tc.bookable, res.Bookable)
			assert.Equal(t, tc.reason, res.Reason)
		})
	}
}

func TestEvaluate_ContainedObligation(t *testing.T) {
	win := window(9, 0, 17, 0)
	// A 15-minute obligation fully inside a 60-minute candidate.
	booked := []Interval{obligation(KindBooking, 10, 15, 15*time.Minute)}

	res, err := Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(10, 0)}, time.Hour, win, booked, dayBefore)
	require.NoError(t, err)
	assert.False(t, res.Bookable)
	assert.Equal(t, ReasonOverlap, res.Reason)
}

func TestEvaluate_OpeningWindow(t *testing.T) {
	win := window(9, 0, 17, 0)

	// Starting exactly at opening time is bookable.
	res, err := Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(9, 0)}, 30*time.Minute, win, nil, dayBefore)
	require.NoError(t, err)
	assert.True(t, res.Bookable)

	// Starting before opening is not.
	res, err = Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(8, 30)}, 30*time.Minute, win, nil, dayBefore)
	require.NoError(t, err)
	assert.Equal(t, ReasonClosed, res.Reason)

	// Running past closing is never bookable, even with no obligations.
	res, err = Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(16, 45)}, 30*time.Minute, win, nil, dayBefore)
	require.NoError(t, err)
	assert.Equal(t, ReasonClosed, res.Reason)

	// A closed window rejects everything.
	res, err = Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(10, 0)}, 30*time.Minute, Closed(testDay), nil, dayBefore)
	require.NoError(t, err)
	assert.Equal(t, ReasonClosed, res.Reason)
}

func TestEvaluate_PastCutoff(t *testing.T) {
	win := window(9, 0, 17, 0)
	now := model.NewTimeOfDay(14, 10).At(testDay)

	// 14:00 has already started.
	res, err := Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(14, 0)}, 30*time.Minute, win, nil, now)
	require.NoError(t, err)
	assert.Equal(t, ReasonPastCutoff, res.Reason)

	// A slot starting exactly now is also rejected.
	res, err = Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(14, 10)}, 30*time.Minute, win, nil, now)
	require.NoError(t, err)
	assert.Equal(t, ReasonPastCutoff, res.Reason)

	res, err = Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(14, 30)}, 30*time.Minute, win, nil, now)
	require.NoError(t, err)
	assert.True(t, res.Bookable)
}

func TestEvaluate_ClosedDayIntervalReportsClosed(t *testing.T) {
	win := window(9, 0, 17, 0)
	allDay := []Interval{obligation(KindClosedDay, 9, 0, 8*time.Hour)}

	res, err := Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(11, 0)}, 30*time.Minute, win, allDay, dayBefore)
	require.NoError(t, err)
	assert.False(t, res.Bookable)
	assert.Equal(t, ReasonClosed, res.Reason)
}

func TestEvaluate_InvalidDuration(t *testing.T) {
	win := window(9, 0, 17, 0)

	for _, d := range []time.Duration{0, -30 * time.Minute} {
		_, err := Evaluate(Slot{Date: testDay, Time: model.NewTimeOfDay(10, 0)}, d, win, nil, dayBefore)
		assert.Error(t, err)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	win := window(9, 0, 17, 0)
	booked := []Interval{obligation(KindBooking, 10, 0, 30*time.Minute)}
	slot := Slot{Date: testDay, Time: model.NewTimeOfDay(10, 0)}

	first, err := Evaluate(slot, 30*time.Minute, win, booked, dayBefore)
	require.NoError(t, err)
	second, err := Evaluate(slot, 30*time.Minute, win, booked, dayBefore)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
