package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
)

type BarberRepository interface {
	Create(ctx context.Context, barber *model.Barber) error
	Get(ctx context.Context, id uuid.UUID) (*model.Barber, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Barber, error)
	Update(ctx context.Context, barber *model.Barber) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
}

type ScheduleRepository interface {
	GetOpeningHours(ctx context.Context, barberID uuid.UUID, weekday time.Weekday) (*model.OpeningHours, error)
	ListOpeningHours(ctx context.Context, barberID uuid.UUID) ([]*model.OpeningHours, error)
	UpsertOpeningHours(ctx context.Context, hours *model.OpeningHours) error

	ListLunchBreaks(ctx context.Context, barberID uuid.UUID) ([]*model.LunchBreak, error)
	CreateLunchBreak(ctx context.Context, lb *model.LunchBreak) error
	DeleteLunchBreak(ctx context.Context, barberID, id uuid.UUID) error

	ListHolidays(ctx context.Context, barberID uuid.UUID) ([]*model.Holiday, error)
	CreateHoliday(ctx context.Context, h *model.Holiday) error
	DeleteHoliday(ctx context.Context, barberID, id uuid.UUID) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}

// ErrNoRows re-exported so callers don't import database/sql directly.
var ErrNoRows = sql.ErrNoRows
