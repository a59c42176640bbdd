package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qdbs/booking-api/internal/availability"
	"github.com/qdbs/booking-api/internal/model"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

type fakeBookingRepo struct {
	created  *model.Booking
	updated  *model.Booking
	existing map[uuid.UUID]*model.Booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.New()
	r.created = b
	return nil
}

func (r *fakeBookingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	if b, ok := r.existing[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, apperrors.NotFound("booking", nil)
}

func (r *fakeBookingRepo) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range r.existing {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *model.Booking) error {
	r.updated = b
	return nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (r *fakeServiceRepo) Create(ctx context.Context, s *model.Service) error { return nil }
func (r *fakeServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, apperrors.NotFound("service", nil)
}
func (r *fakeServiceRepo) List(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	return nil, nil
}
func (r *fakeServiceRepo) Update(ctx context.Context, s *model.Service) error { return nil }
func (r *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

type fakeBarberRepo struct {
	barbers map[uuid.UUID]*model.Barber
}

func (r *fakeBarberRepo) Create(ctx context.Context, b *model.Barber) error { return nil }
func (r *fakeBarberRepo) Get(ctx context.Context, id uuid.UUID) (*model.Barber, error) {
	if b, ok := r.barbers[id]; ok {
		return b, nil
	}
	return nil, apperrors.NotFound("barber", nil)
}
func (r *fakeBarberRepo) List(ctx context.Context, activeOnly bool) ([]*model.Barber, error) {
	return nil, nil
}
func (r *fakeBarberRepo) Update(ctx context.Context, b *model.Barber) error { return nil }
func (r *fakeBarberRepo) Delete(ctx context.Context, id uuid.UUID) error    { return nil }

type fakeOutbox struct {
	events []*model.OutboxEvent
}

func (o *fakeOutbox) Create(ctx context.Context, e *model.OutboxEvent) error {
	o.events = append(o.events, e)
	return nil
}
func (o *fakeOutbox) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (o *fakeOutbox) MarkProcessed(ctx context.Context, id uuid.UUID) error          { return nil }
func (o *fakeOutbox) MarkFailed(ctx context.Context, id uuid.UUID, msg string) error { return nil }
func (o *fakeOutbox) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeChecker struct {
	result *availability.Result
	err    error
	calls  int
}

func (c *fakeChecker) IsSlotBookable(ctx context.Context, barberID uuid.UUID, date time.Time, t model.TimeOfDay, duration time.Duration) (*availability.Result, error) {
	c.calls++
	return c.result, c.err
}

type fixture struct {
	svc       *Service
	repo      *fakeBookingRepo
	outbox    *fakeOutbox
	checker   *fakeChecker
	barberID  uuid.UUID
	serviceID uuid.UUID
}

func newFixture(bookable bool) *fixture {
	barberID := uuid.New()
	serviceID := uuid.New()

	repo := &fakeBookingRepo{existing: map[uuid.UUID]*model.Booking{}}
	outbox := &fakeOutbox{}
	checker := &fakeChecker{
		result: &availability.Result{Bookable: bookable, Reason: availability.ReasonOverlap},
	}
	if bookable {
		checker.result.Reason = availability.ReasonNone
	}

	svc := NewService(
		repo,
		&fakeServiceRepo{services: map[uuid.UUID]*model.Service{
			serviceID: {Base: model.Base{ID: serviceID}, Name: "Haircut", Duration: 30, Active: true},
		}},
		&fakeBarberRepo{barbers: map[uuid.UUID]*model.Barber{
			barberID: {Base: model.Base{ID: barberID}, Name: "Sam", Active: true},
		}},
		checker,
		outbox,
		nil,
	)

	return &fixture{svc: svc, repo: repo, outbox: outbox, checker: checker, barberID: barberID, serviceID: serviceID}
}

func createReq(f *fixture) *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		BarberID:  f.barberID,
		ServiceID: f.serviceID,
		GuestName: "Alex",
		Date:      "2026-09-15",
		Time:      "10:00",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(true)

	booking, err := f.svc.CreateBooking(context.Background(), createReq(f))
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 30, booking.Duration, "duration must be snapshotted from the service")
	assert.Equal(t, model.NewTimeOfDay(10, 0), booking.Time)
	assert.Equal(t, 1, f.checker.calls, "slot must be re-validated before the write")

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, model.EventBookingCreated, f.outbox.events[0].EventType)
}

func TestCreateBooking_SlotNotBookable(t *testing.T) {
	f := newFixture(false)

	_, err := f.svc.CreateBooking(context.Background(), createReq(f))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Nil(t, f.repo.created, "no booking row may be written for a blocked slot")
	assert.Empty(t, f.outbox.events)
}

func TestCreateBooking_UnknownService(t *testing.T) {
	f := newFixture(true)
	req := createReq(f)
	req.ServiceID = uuid.New()

	_, err := f.svc.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, 0, f.checker.calls)
}

func TestCreateBooking_InvalidDateAndTime(t *testing.T) {
	f := newFixture(true)

	req := createReq(f)
	req.Date = "15/09/2026"
	_, err := f.svc.CreateBooking(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidArgument))

	req = createReq(f)
	req.Time = "half past ten"
	_, err = f.svc.CreateBooking(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidArgument))
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(true)
	id := uuid.New()
	f.repo.existing[id] = &model.Booking{
		Base:   model.Base{ID: id},
		Status: model.BookingStatusConfirmed,
	}

	booking, err := f.svc.CancelBooking(context.Background(), id, "customer request")
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusCancelled, booking.Status)
	require.NotNil(t, booking.CancelReason)
	assert.Equal(t, "customer request", *booking.CancelReason)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, model.EventBookingCancelled, f.outbox.events[0].EventType)
}

func TestCancelBooking_InvalidStates(t *testing.T) {
	f := newFixture(true)

	cancelled := uuid.New()
	completed := uuid.New()
	f.repo.existing[cancelled] = &model.Booking{Base: model.Base{ID: cancelled}, Status: model.BookingStatusCancelled}
	f.repo.existing[completed] = &model.Booking{Base: model.Base{ID: completed}, Status: model.BookingStatusCompleted}

	_, err := f.svc.CancelBooking(context.Background(), cancelled, "again")
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	_, err = f.svc.CancelBooking(context.Background(), completed, "too late")
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestCompleteBooking_OnlyConfirmed(t *testing.T) {
	f := newFixture(true)

	confirmed := uuid.New()
	cancelled := uuid.New()
	f.repo.existing[confirmed] = &model.Booking{Base: model.Base{ID: confirmed}, Status: model.BookingStatusConfirmed}
	f.repo.existing[cancelled] = &model.Booking{Base: model.Base{ID: cancelled}, Status: model.BookingStatusCancelled}

	booking, err := f.svc.CompleteBooking(context.Background(), confirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, booking.Status)

	_, err = f.svc.CompleteBooking(context.Background(), cancelled)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}
