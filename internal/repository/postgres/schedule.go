package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

func (r *scheduleRepository) GetOpeningHours(ctx context.Context, barberID uuid.UUID, weekday time.Weekday) (*model.OpeningHours, error) {
	query := `
		SELECT id, barber_id, weekday, is_open, open_time, close_time, created_at, updated_at
		FROM opening_hours
		WHERE barber_id = $1 AND weekday = $2
	`
	var hours model.OpeningHours
	err := r.db.GetContext(ctx, &hours, query, barberID, int(weekday))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get opening hours: %w", err)
	}
	return &hours, nil
}

func (r *scheduleRepository) ListOpeningHours(ctx context.Context, barberID uuid.UUID) ([]*model.OpeningHours, error) {
	query := `
		SELECT id, barber_id, weekday, is_open, open_time, close_time, created_at, updated_at
		FROM opening_hours
		WHERE barber_id = $1
		ORDER BY weekday ASC
	`
	var hours []*model.OpeningHours
	err := r.db.SelectContext(ctx, &hours, query, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening hours: %w", err)
	}
	return hours, nil
}

func (r *scheduleRepository) UpsertOpeningHours(ctx context.Context, hours *model.OpeningHours) error {
	query := `
		INSERT INTO opening_hours (
			id, barber_id, weekday, is_open, open_time, close_time, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (barber_id, weekday)
		DO UPDATE SET is_open = $4, open_time = $5, close_time = $6, updated_at = $8
	`
	if hours.ID == uuid.Nil {
		hours.ID = uuid.New()
		hours.CreatedAt = time.Now()
	}
	hours.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		hours.ID,
		hours.BarberID,
		int(hours.Weekday),
		hours.IsOpen,
		hours.OpenTime,
		hours.CloseTime,
		hours.CreatedAt,
		hours.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert opening hours: %w", err)
	}
	return nil
}

func (r *scheduleRepository) ListLunchBreaks(ctx context.Context, barberID uuid.UUID) ([]*model.LunchBreak, error) {
	query := `
		SELECT id, barber_id, start_time, duration_minutes, active, created_at, updated_at
		FROM lunch_breaks
		WHERE barber_id = $1
		ORDER BY start_time ASC
	`
	var breaks []*model.LunchBreak
	err := r.db.SelectContext(ctx, &breaks, query, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lunch breaks: %w", err)
	}
	return breaks, nil
}

func (r *scheduleRepository) CreateLunchBreak(ctx context.Context, lb *model.LunchBreak) error {
	query := `
		INSERT INTO lunch_breaks (
			id, barber_id, start_time, duration_minutes, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	lb.ID = uuid.New()
	lb.CreatedAt = time.Now()
	lb.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		lb.ID,
		lb.BarberID,
		lb.StartTime,
		lb.Duration,
		lb.Active,
		lb.CreatedAt,
		lb.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lunch break: %w", err)
	}
	return nil
}

func (r *scheduleRepository) DeleteLunchBreak(ctx context.Context, barberID, id uuid.UUID) error {
	query := `
		DELETE FROM lunch_breaks
		WHERE id = $1 AND barber_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, barberID)
	if err != nil {
		return fmt.Errorf("failed to delete lunch break: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("lunch break", nil)
	}
	return nil
}

func (r *scheduleRepository) ListHolidays(ctx context.Context, barberID uuid.UUID) ([]*model.Holiday, error) {
	query := `
		SELECT id, barber_id, start_date, end_date, reason, created_at, updated_at
		FROM holidays
		WHERE barber_id = $1
		ORDER BY start_date ASC
	`
	var holidays []*model.Holiday
	err := r.db.SelectContext(ctx, &holidays, query, barberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}

func (r *scheduleRepository) CreateHoliday(ctx context.Context, h *model.Holiday) error {
	query := `
		INSERT INTO holidays (
			id, barber_id, start_date, end_date, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.BarberID,
		h.StartDate,
		h.EndDate,
		h.Reason,
		h.CreatedAt,
		h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create holiday: %w", err)
	}
	return nil
}

func (r *scheduleRepository) DeleteHoliday(ctx context.Context, barberID, id uuid.UUID) error {
	query := `
		DELETE FROM holidays
		WHERE id = $1 AND barber_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, barberID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("holiday", nil)
	}
	return nil
}
