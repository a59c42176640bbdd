package barber

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
	"github.com/qdbs/booking-api/internal/repository"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
)

type Service struct {
	repo repository.BarberRepository
}

func NewService(repo repository.BarberRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateBarber(ctx context.Context, req *model.CreateBarberRequest) (*model.Barber, error) {
	barber := &model.Barber{
		Name:   req.Name,
		Email:  req.Email,
		Color:  req.Color,
		Active: true,
	}
	if err := s.repo.Create(ctx, barber); err != nil {
		return nil, fmt.Errorf("failed to create barber: %w", err)
	}
	return barber, nil
}

func (s *Service) GetBarber(ctx context.Context, id uuid.UUID) (*model.Barber, error) {
	barber, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get barber: %w", err)
	}
	return barber, nil
}

func (s *Service) ListBarbers(ctx context.Context, activeOnly bool) ([]*model.Barber, error) {
	barbers, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return barbers, nil
}

func (s *Service) UpdateBarber(ctx context.Context, id uuid.UUID, req *model.UpdateBarberRequest) (*model.Barber, error) {
	barber, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get barber: %w", err)
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Email != nil {
		barber.Email = *req.Email
	}
	if req.Color != nil {
		barber.Color = *req.Color
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := s.repo.Update(ctx, barber); err != nil {
		return nil, fmt.Errorf("failed to update barber: %w", err)
	}
	return barber, nil
}

func (s *Service) DeleteBarber(ctx context.Context, id uuid.UUID) error {
	barber, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get barber: %w", err)
	}

	// Deactivate instead of deleting staff with history; hard delete
	// is only allowed once the barber is inactive.
	if barber.Active {
		return apperrors.Conflict("barber must be deactivated before deletion", nil)
	}

	return s.repo.Delete(ctx, id)
}
