package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qdbs/booking-api/internal/model"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

// 2026-09-15 is a Tuesday.
var (
	testDay    = time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	testBarber = uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
)

type fakeStore struct {
	hours    map[time.Weekday]*model.OpeningHours
	bookings []model.BookingObligation
	lunches  []model.LunchBreak
	holidays []model.Holiday
	err      error
}

func (s *fakeStore) GetOpeningHours(ctx context.Context, barberID uuid.UUID, weekday time.Weekday) (*model.OpeningHours, error) {
	if s.err != nil {
		return nil, s.err
	}
	if barberID != testBarber {
		return nil, apperrors.NotFound("barber", nil)
	}
	return s.hours[weekday], nil
}

func (s *fakeStore) GetConfirmedBookings(ctx context.Context, barberID uuid.UUID, date time.Time) ([]model.BookingObligation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bookings, nil
}

func (s *fakeStore) GetActiveLunchBreaks(ctx context.Context, barberID uuid.UUID) ([]model.LunchBreak, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lunches, nil
}

func (s *fakeStore) GetHolidayRanges(ctx context.Context, barberID uuid.UUID) ([]model.Holiday, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.holidays, nil
}

func openNineToFive() map[time.Weekday]*model.OpeningHours {
	return map[time.Weekday]*model.OpeningHours{
		time.Tuesday: {
			BarberID:  testBarber,
			Weekday:   time.Tuesday,
			IsOpen:    true,
			OpenTime:  model.NewTimeOfDay(9, 0),
			CloseTime: model.NewTimeOfDay(17, 0),
		},
	}
}

func newTestEngine(store *fakeStore, now time.Time) *Engine {
	return New(store, Config{Now: func() time.Time { return now }})
}

// the day before, so every slot on testDay is in the future
var dayBefore = testDay.Add(-12 * time.Hour)

func TestAvailableSlots_EmptyDay(t *testing.T) {
	e := newTestEngine(&fakeStore{hours: openNineToFive()}, dayBefore)

	slots, err := e.AvailableSlots(context.Background(), testBarber, testDay, 30*time.Minute)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, model.NewTimeOfDay(9, 0), slots[0])
	assert.Equal(t, model.NewTimeOfDay(16, 30), slots[15])
}

func TestAvailableSlots_ExcludesBookedSlot(t *testing.T) {
	store := &fakeStore{
		hours: openNineToFive(),
		bookings: []model.BookingObligation{
			{Time: model.NewTimeOfDay(10, 0), Duration: 30},
		},
	}
	e := newTestEngine(store, dayBefore)

	slots, err := e.AvailableSlots(context.Background(), testBarber, testDay, 30*time.Minute)
	require.NoError(t, err)

	assert.NotContains(t, slots, model.NewTimeOfDay(10, 0))
	assert.Contains(t, slots, model.NewTimeOfDay(9, 30))
	assert.Contains(t, slots, model.NewTimeOfDay(10, 30))
	assert.Len(t, slots, 15)
}

func TestAvailableSlots_LunchBreakBlocksOverlappingSlots(t *testing.T) {
	store := &fakeStore{
		hours: openNineToFive(),
		lunches: []model.LunchBreak{
			{BarberID: testBarber, StartTime: model.NewTimeOfDay(13, 0), Duration: 60, Active: true},
		},
	}
	e := newTestEngine(store, dayBefore)

	slots, err := e.AvailableSlots(context.Background(), testBarber, testDay, 30*time.Minute)
	require.NoError(t, err)

	// Both starts inside [13:00, 14:00) are blocked.
	assert.NotContains(t, slots, model.NewTimeOfDay(13, 0))
	assert.NotContains(t, slots, model.NewTimeOfDay(13, 30))
	// 12:30 ends exactly at lunch start, 14:00 starts exactly at lunch
	// end; neither overlaps.
	assert.Contains(t, slots, model.NewTimeOfDay(12, 30))
	assert.Contains(t, slots, model.NewTimeOfDay(14, 0))
}

func TestAvailability_HolidayBlocksWholeDay(t *testing.T) {
	store := &fakeStore{
		hours: openNineToFive(),
		holidays: []model.Holiday{
			{BarberID: testBarber, StartDate: testDay.AddDate(0, 0, -1), EndDate: testDay.AddDate(0, 0, 1)},
		},
	}
	e := newTestEngine(store, dayBefore)

	slots, err := e.AvailableSlots(context.Background(), testBarber, testDay, 30*time.Minute)
	require.NoError(t, err)
	assert.Empty(t, slots)

	res, err := e.IsSlotBookable(context.Background(), testBarber, testDay, model.NewTimeOfDay(10, 0), 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Bookable)
	assert.Equal(t, ReasonClosed, res.Reason)
}

func TestAvailability_HolidayRangeIsInclusiveOnBothEnds(t *testing.T) {
	holiday := model.Holiday{
		BarberID:  testBarber,
		StartDate: testDay,
		EndDate:   testDay.AddDate(0, 0, 7),
	}
	store := &fakeStore{hours: openNineToFive(), holidays: []model.Holiday{holiday}}
	e := newTestEngine(store, dayBefore)

	// First day of the range is blocked.
	ok, err := e.HasAvailability(context.Background(), testBarber, testDay, 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// Last day of the range is blocked too; 2026-09-22 is also a Tuesday.
	ok, err = e.HasAvailability(context.Background(), testBarber, testDay.AddDate(0, 0, 7), 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// The day after the range is open again (next Tuesday + 7 is a
	// Tuesday again only every other week; use +14 to stay on an open
	// weekday).
	ok, err = e.HasAvailability(context.Background(), testBarber, testDay.AddDate(0, 0, 14), 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSlotBookable_PastCutoff(t *testing.T) {
	store := &fakeStore{hours: openNineToFive()}
	// It is 14:10 on the queried day.
	e := newTestEngine(store, testDay.Add(14*time.Hour+10*time.Minute))

	res, err := e.IsSlotBookable(context.Background(), testBarber, testDay, model.NewTimeOfDay(14, 0), 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Bookable)
	assert.Equal(t, ReasonPastCutoff, res.Reason)

	// The next slot is still in the future and bookable.
	res, err = e.IsSlotBookable(context.Background(), testBarber, testDay, model.NewTimeOfDay(14, 30), 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Bookable)
}

func TestIsSlotBookable_EndPastClosingTime(t *testing.T) {
	store := &fakeStore{hours: openNineToFive()}
	e := newTestEngine(store, dayBefore)

	// 16:30 + 60 minutes would run past 17:00.
	res, err := e.IsSlotBookable(context.Background(), testBarber, testDay, model.NewTimeOfDay(16, 30), 60*time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Bookable)
	assert.Equal(t, ReasonClosed, res.Reason)

	// 16:00 + 60 minutes ends exactly at close and is fine.
	res, err = e.IsSlotBookable(context.Background(), testBarber, testDay, model.NewTimeOfDay(16, 0), 60*time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Bookable)
}

func TestIsSlotBookable_ClosedWeekday(t *testing.T) {
	store := &fakeStore{hours: openNineToFive()}
	e := newTestEngine(store, dayBefore)

	// No opening hours row for Wednesday.
	res, err := e.IsSlotBookable(context.Background(), testBarber, testDay.AddDate(0, 0, 1), model.NewTimeOfDay(10, 0), 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Bookable)
	assert.Equal(t, ReasonClosed, res.Reason)
}

func TestIsSlotBookable_InvalidDuration(t *testing.T) {
	e := newTestEngine(&fakeStore{hours: openNineToFive()}, dayBefore)

	_, err := e.IsSlotBookable(context.Background(), testBarber, testDay, model.NewTimeOfDay(10, 0), 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidArgument))
}

func TestEngine_UnknownBarberPropagatesNotFound(t *testing.T) {
	e := newTestEngine(&fakeStore{hours: openNineToFive()}, dayBefore)

	_, err := e.AvailableSlots(context.Background(), uuid.New(), testDay, 30*time.Minute)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestEngine_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")
	e := newTestEngine(&fakeStore{hours: openNineToFive(), err: boom}, dayBefore)

	_, err := e.AvailableSlots(context.Background(), testBarber, testDay, 30*time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// Errors must never be conflated with "no availability".
	_, err = e.HasAvailability(context.Background(), testBarber, testDay, 30*time.Minute)
	require.Error(t, err)
}

func TestHasAvailability_AgreesWithAvailableSlots(t *testing.T) {
	cases := []struct {
		name  string
		store *fakeStore
	}{
		{"open empty day", &fakeStore{hours: openNineToFive()}},
		{"closed day", &fakeStore{hours: map[time.Weekday]*model.OpeningHours{}}},
		{"fully booked", &fakeStore{
			hours: openNineToFive(),
			bookings: []model.BookingObligation{
				{Time: model.NewTimeOfDay(9, 0), Duration: 480},
			},
		}},
		{"single gap", &fakeStore{
			hours: openNineToFive(),
			bookings: []model.BookingObligation{
				{Time: model.NewTimeOfDay(9, 0), Duration: 210},
				{Time: model.NewTimeOfDay(13, 0), Duration: 240},
			},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(tc.store, dayBefore)

			slots, err := e.AvailableSlots(context.Background(), testBarber, testDay, 30*time.Minute)
			require.NoError(t, err)

			ok, err := e.HasAvailability(context.Background(), testBarber, testDay, 30*time.Minute)
			require.NoError(t, err)

			assert.Equal(t, len(slots) > 0, ok)
		})
	}
}

func TestFullyBookedDays(t *testing.T) {
	store := &fakeStore{
		hours: openNineToFive(),
		holidays: []model.Holiday{
			{BarberID: testBarber, StartDate: testDay, EndDate: testDay},
		},
	}
	e := newTestEngine(store, dayBefore)

	// Seven days starting at the holiday Tuesday: only the following
	// Tuesday is open, everything else is closed or on holiday.
	full, err := e.FullyBookedDays(context.Background(), testBarber, testDay, 8, 30*time.Minute)
	require.NoError(t, err)

	assert.Contains(t, full, testDay)
	assert.NotContains(t, full, testDay.AddDate(0, 0, 7))
	assert.Len(t, full, 7)
}

func TestCollectObligations_OrderedAndFiltered(t *testing.T) {
	store := &fakeStore{
		hours: openNineToFive(),
		bookings: []model.BookingObligation{
			{Time: model.NewTimeOfDay(15, 0), Duration: 30},
			{Time: model.NewTimeOfDay(9, 30), Duration: 45},
		},
		lunches: []model.LunchBreak{
			{BarberID: testBarber, StartTime: model.NewTimeOfDay(12, 0), Duration: 60, Active: true},
		},
	}
	e := newTestEngine(store, dayBefore)

	win, err := e.ResolveWindow(context.Background(), testBarber, testDay)
	require.NoError(t, err)

	obligations, err := e.CollectObligations(context.Background(), testBarber, testDay, win)
	require.NoError(t, err)

	require.Len(t, obligations, 3)
	assert.Equal(t, KindBooking, obligations[0].Kind)
	assert.Equal(t, KindLunchBreak, obligations[1].Kind)
	assert.Equal(t, KindBooking, obligations[2].Kind)
	assert.True(t, obligations[0].Start.Before(obligations[1].Start))
	assert.True(t, obligations[1].Start.Before(obligations[2].Start))

	// The booking interval uses the duration snapshot.
	assert.Equal(t, 45*time.Minute, obligations[0].End.Sub(obligations[0].Start))
}
