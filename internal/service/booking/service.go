package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/qdbs/booking-api/internal/availability"
	"github.com/qdbs/booking-api/internal/model"
	"github.com/qdbs/booking-api/internal/repository"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

// SlotChecker is the availability engine's pre-commit check. The
// booking write path re-validates the requested slot through it
// immediately before the insert; the database exclusion constraint
// remains the final arbiter under concurrency.
type SlotChecker interface {
	IsSlotBookable(ctx context.Context, barberID uuid.UUID, date time.Time, t model.TimeOfDay, duration time.Duration) (*availability.Result, error)
}

// Notifier delivers booking notifications. Dispatch itself (email,
// SMS) lives outside this service; failures are logged, never fatal.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *model.Booking) error
	BookingCancelled(ctx context.Context, booking *model.Booking) error
}

// NoopNotifier is the default when no dispatcher is wired.
type NoopNotifier struct{}

func (NoopNotifier) BookingConfirmed(context.Context, *model.Booking) error { return nil }
func (NoopNotifier) BookingCancelled(context.Context, *model.Booking) error { return nil }

type Service struct {
	repo        repository.BookingRepository
	serviceRepo repository.ServiceRepository
	barberRepo  repository.BarberRepository
	checker     SlotChecker
	outbox      repository.OutboxRepository
	notifier    Notifier
}

func NewService(
	repo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	barberRepo repository.BarberRepository,
	checker SlotChecker,
	outbox repository.OutboxRepository,
	notifier Notifier,
) *Service {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		barberRepo:  barberRepo,
		checker:     checker,
		outbox:      outbox,
		notifier:    notifier,
	}
}

func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid date format, expected YYYY-MM-DD", err)
	}

	startTime, err := model.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid time format, expected HH:MM", err)
	}

	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if !svc.Active {
		return nil, apperrors.InvalidArgument("service is no longer offered", nil)
	}
	if svc.Duration <= 0 {
		return nil, apperrors.InvalidArgument("service has no valid duration", nil)
	}

	barber, err := s.barberRepo.Get(ctx, req.BarberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get barber: %w", err)
	}
	if !barber.Active {
		return nil, apperrors.InvalidArgument("barber is not taking bookings", nil)
	}

	duration := time.Duration(svc.Duration) * time.Minute
	res, err := s.checker.IsSlotBookable(ctx, req.BarberID, date, startTime, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to validate slot: %w", err)
	}
	if !res.Bookable {
		return nil, apperrors.Conflict(fmt.Sprintf("slot is not bookable: %s", res.Reason), nil)
	}

	booking := &model.Booking{
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Date:       model.DateOf(date),
		Time:       startTime,
		Duration:   svc.Duration, // snapshot; later service edits don't move this booking
		Status:     model.BookingStatusConfirmed,
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.emitEvent(ctx, model.EventBookingCreated, booking)

	if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("booking confirmation notification failed")
	}

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	switch booking.Status {
	case model.BookingStatusCancelled:
		return nil, apperrors.Conflict("booking is already cancelled", nil)
	case model.BookingStatusCompleted:
		return nil, apperrors.Conflict("cannot cancel a completed booking", nil)
	}

	booking.Status = model.BookingStatusCancelled
	booking.CancelReason = &reason

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.emitEvent(ctx, model.EventBookingCancelled, booking)

	if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("booking cancellation notification failed")
	}

	return booking, nil
}

func (s *Service) CompleteBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusCompleted)
}

func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusNoShow)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to model.BookingStatus) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.Status != model.BookingStatusConfirmed {
		return nil, apperrors.Conflict(fmt.Sprintf("only confirmed bookings can be marked %s", to), nil)
	}

	booking.Status = to
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

func (s *Service) emitEvent(ctx context.Context, eventType string, booking *model.Booking) {
	payload, err := json.Marshal(booking)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal booking event")
		return
	}

	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to enqueue booking event")
	}
}
