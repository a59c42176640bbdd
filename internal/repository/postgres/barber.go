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

func (r *barberRepository) Create(ctx context.Context, barber *model.Barber) error {
	query := `
		INSERT INTO barbers (
			id, name, email, color, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	barber.ID = uuid.New()
	barber.CreatedAt = time.Now()
	barber.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		barber.ID,
		barber.Name,
		barber.Email,
		barber.Color,
		barber.Active,
		barber.CreatedAt,
		barber.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create barber: %w", err)
	}
	return nil
}

func (r *barberRepository) Get(ctx context.Context, id uuid.UUID) (*model.Barber, error) {
	query := `
		SELECT id, name, email, color, active, created_at, updated_at
		FROM barbers
		WHERE id = $1
	`
	var barber model.Barber
	err := r.db.GetContext(ctx, &barber, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("barber", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get barber: %w", err)
	}
	return &barber, nil
}

func (r *barberRepository) List(ctx context.Context, activeOnly bool) ([]*model.Barber, error) {
	query := `
		SELECT id, name, email, color, active, created_at, updated_at
		FROM barbers
	`
	if activeOnly {
		query += " WHERE active = true"
	}
	query += " ORDER BY name ASC"

	var barbers []*model.Barber
	err := r.db.SelectContext(ctx, &barbers, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return barbers, nil
}

func (r *barberRepository) Update(ctx context.Context, barber *model.Barber) error {
	query := `
		UPDATE barbers
		SET name = $1, email = $2, color = $3, active = $4, updated_at = $5
		WHERE id = $6
	`
	barber.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		barber.Name,
		barber.Email,
		barber.Color,
		barber.Active,
		barber.UpdatedAt,
		barber.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update barber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("barber", nil)
	}
	return nil
}

func (r *barberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM barbers
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete barber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("barber", nil)
	}
	return nil
}
