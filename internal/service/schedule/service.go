package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
	"github.com/qdbs/booking-api/internal/repository"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

// Service manages the schedule configuration the availability engine
// reads: weekly opening hours, lunch breaks and holiday ranges.
type Service struct {
	repo       repository.ScheduleRepository
	barberRepo repository.BarberRepository
}

func NewService(repo repository.ScheduleRepository, barberRepo repository.BarberRepository) *Service {
	return &Service{repo: repo, barberRepo: barberRepo}
}

func (s *Service) ListOpeningHours(ctx context.Context, barberID uuid.UUID) ([]*model.OpeningHours, error) {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return nil, err
	}
	hours, err := s.repo.ListOpeningHours(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening hours: %w", err)
	}
	return hours, nil
}

func (s *Service) UpsertOpeningHours(ctx context.Context, barberID uuid.UUID, req *model.UpsertOpeningHoursRequest) (*model.OpeningHours, error) {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return nil, err
	}
	if req.Weekday < time.Sunday || req.Weekday > time.Saturday {
		return nil, apperrors.InvalidArgument("weekday must be 0 (Sunday) through 6 (Saturday)", nil)
	}

	hours := &model.OpeningHours{
		BarberID: barberID,
		Weekday:  req.Weekday,
		IsOpen:   req.IsOpen,
	}

	if req.IsOpen {
		openTime, err := model.ParseTimeOfDay(req.OpenTime)
		if err != nil {
			return nil, apperrors.InvalidArgument("invalid open_time", err)
		}
		closeTime, err := model.ParseTimeOfDay(req.CloseTime)
		if err != nil {
			return nil, apperrors.InvalidArgument("invalid close_time", err)
		}
		if openTime >= closeTime {
			return nil, apperrors.InvalidArgument("open_time must be before close_time", nil)
		}
		hours.OpenTime = openTime
		hours.CloseTime = closeTime
	}

	if existing, err := s.repo.GetOpeningHours(ctx, barberID, req.Weekday); err == nil && existing != nil {
		hours.Base = existing.Base
	}

	if err := s.repo.UpsertOpeningHours(ctx, hours); err != nil {
		return nil, fmt.Errorf("failed to save opening hours: %w", err)
	}
	return hours, nil
}

func (s *Service) ListLunchBreaks(ctx context.Context, barberID uuid.UUID) ([]*model.LunchBreak, error) {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return nil, err
	}
	breaks, err := s.repo.ListLunchBreaks(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lunch breaks: %w", err)
	}
	return breaks, nil
}

func (s *Service) CreateLunchBreak(ctx context.Context, barberID uuid.UUID, req *model.CreateLunchBreakRequest) (*model.LunchBreak, error) {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return nil, err
	}

	startTime, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid start_time", err)
	}
	if req.Duration <= 0 {
		return nil, apperrors.InvalidArgument("duration must be positive", nil)
	}

	lb := &model.LunchBreak{
		BarberID:  barberID,
		StartTime: startTime,
		Duration:  req.Duration,
		Active:    true,
	}
	if err := s.repo.CreateLunchBreak(ctx, lb); err != nil {
		return nil, fmt.Errorf("failed to create lunch break: %w", err)
	}
	return lb, nil
}

func (s *Service) DeleteLunchBreak(ctx context.Context, barberID, id uuid.UUID) error {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return err
	}
	return s.repo.DeleteLunchBreak(ctx, barberID, id)
}

func (s *Service) ListHolidays(ctx context.Context, barberID uuid.UUID) ([]*model.Holiday, error) {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return nil, err
	}
	holidays, err := s.repo.ListHolidays(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}

func (s *Service) CreateHoliday(ctx context.Context, barberID uuid.UUID, req *model.CreateHolidayRequest) (*model.Holiday, error) {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid start_date, expected YYYY-MM-DD", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid end_date, expected YYYY-MM-DD", err)
	}
	if endDate.Before(startDate) {
		return nil, apperrors.InvalidArgument("end_date must not be before start_date", nil)
	}

	h := &model.Holiday{
		BarberID:  barberID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}
	if err := s.repo.CreateHoliday(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, barberID, id uuid.UUID) error {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return err
	}
	return s.repo.DeleteHoliday(ctx, barberID, id)
}

func (s *Service) ensureBarber(ctx context.Context, barberID uuid.UUID) error {
	if _, err := s.barberRepo.Get(ctx, barberID); err != nil {
		return fmt.Errorf("failed to get barber: %w", err)
	}
	return nil
}
