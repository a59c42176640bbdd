package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qdbs/booking-api/internal/availability"
	"github.com/qdbs/booking-api/internal/model"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

// availabilityStore implements availability.Store on top of the same
// schedule tables the admin endpoints manage. All queries are
// read-only and scoped to one barber.
type availabilityStore struct {
	db *sqlx.DB
}

func NewAvailabilityStore(db *sqlx.DB) availability.Store {
	return &availabilityStore{db: db}
}

func (s *availabilityStore) GetOpeningHours(ctx context.Context, barberID uuid.UUID, weekday time.Weekday) (*model.OpeningHours, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM barbers WHERE id = $1)`, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up barber: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("barber", nil)
	}

	query := `
		SELECT id, barber_id, weekday, is_open, open_time, close_time, created_at, updated_at
		FROM opening_hours
		WHERE barber_id = $1 AND weekday = $2
	`
	var hours model.OpeningHours
	err = s.db.GetContext(ctx, &hours, query, barberID, int(weekday))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get opening hours: %w", err)
	}
	return &hours, nil
}

func (s *availabilityStore) GetConfirmedBookings(ctx context.Context, barberID uuid.UUID, date time.Time) ([]model.BookingObligation, error) {
	// duration_minutes is the snapshot taken at booking time; existing
	// bookings keep blocking the time they were sold for even if the
	// service definition changes later.
	query := `
		SELECT booking_time, duration_minutes
		FROM bookings
		WHERE barber_id = $1
		AND booking_date = $2
		AND status = $3
		ORDER BY booking_time ASC
	`
	var bookings []model.BookingObligation
	err := s.db.SelectContext(ctx, &bookings, query, barberID, model.DateOf(date), model.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to get confirmed bookings: %w", err)
	}
	return bookings, nil
}

func (s *availabilityStore) GetActiveLunchBreaks(ctx context.Context, barberID uuid.UUID) ([]model.LunchBreak, error) {
	query := `
		SELECT id, barber_id, start_time, duration_minutes, active, created_at, updated_at
		FROM lunch_breaks
		WHERE barber_id = $1 AND active = true
		ORDER BY start_time ASC
	`
	var breaks []model.LunchBreak
	err := s.db.SelectContext(ctx, &breaks, query, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lunch breaks: %w", err)
	}
	return breaks, nil
}

func (s *availabilityStore) GetHolidayRanges(ctx context.Context, barberID uuid.UUID) ([]model.Holiday, error) {
	query := `
		SELECT id, barber_id, start_date, end_date, reason, created_at, updated_at
		FROM holidays
		WHERE barber_id = $1
		ORDER BY start_date ASC
	`
	var holidays []model.Holiday
	err := s.db.SelectContext(ctx, &holidays, query, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	return holidays, nil
}
