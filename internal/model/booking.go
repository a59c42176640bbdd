package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Booking is a confirmed (or historical) appointment. Duration is a
// snapshot of the service duration taken at booking time; later edits
// to the service must not change the time this booking blocks.
type Booking struct {
	Base
	BarberID     uuid.UUID     `db:"barber_id" json:"barber_id"`
	ServiceID    uuid.UUID     `db:"service_id" json:"service_id"`
	GuestName    string        `db:"guest_name" json:"guest_name"`
	GuestEmail   string        `db:"guest_email" json:"guest_email,omitempty"`
	GuestPhone   string        `db:"guest_phone" json:"guest_phone,omitempty"`
	Date         time.Time     `db:"booking_date" json:"date"`
	Time         TimeOfDay     `db:"booking_time" json:"time"`
	Duration     int           `db:"duration_minutes" json:"duration_minutes"`
	Status       BookingStatus `db:"status" json:"status"`
	Notes        string        `db:"notes" json:"notes,omitempty"`
	CancelReason *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// StartsAt returns the booking start as a full timestamp.
func (b *Booking) StartsAt() time.Time {
	return b.Time.At(b.Date)
}

// EndsAt returns the booking end as a full timestamp.
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt().Add(time.Duration(b.Duration) * time.Minute)
}

type CreateBookingRequest struct {
	BarberID   uuid.UUID `json:"barber_id" binding:"required" validate:"required"`
	ServiceID  uuid.UUID `json:"service_id" binding:"required" validate:"required"`
	GuestName  string    `json:"guest_name" binding:"required" validate:"required,max=100"`
	GuestEmail string    `json:"guest_email" validate:"omitempty,email"`
	GuestPhone string    `json:"guest_phone" validate:"max=20"`
	Date       string    `json:"date" binding:"required" validate:"required"` // "2006-01-02"
	Time       string    `json:"time" binding:"required" validate:"required"` // "15:04"
	Notes      string    `json:"notes" validate:"max=1000"`
}

type BookingFilters struct {
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	Status    BookingStatus
	StartDate time.Time
	EndDate   time.Time
}

// BookingObligation is the slice of a confirmed booking the
// availability engine needs: its start time of day and the duration
// snapshot captured when the booking was made.
type BookingObligation struct {
	Time     TimeOfDay `db:"booking_time" json:"time"`
	Duration int       `db:"duration_minutes" json:"duration_minutes"`
}
