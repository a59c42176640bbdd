package model

import (
	"time"

	"github.com/google/uuid"
)

// OpeningHours is the open/closed window for one barber on one
// weekday. At most one row exists per (barber, weekday); a missing row
// means closed.
type OpeningHours struct {
	Base
	BarberID  uuid.UUID    `db:"barber_id" json:"barber_id"`
	Weekday   time.Weekday `db:"weekday" json:"weekday"`
	IsOpen    bool         `db:"is_open" json:"is_open"`
	OpenTime  TimeOfDay    `db:"open_time" json:"open_time"`
	CloseTime TimeOfDay    `db:"close_time" json:"close_time"`
}

// LunchBreak blocks a fixed window every day for a barber while active.
type LunchBreak struct {
	Base
	BarberID  uuid.UUID `db:"barber_id" json:"barber_id"`
	StartTime TimeOfDay `db:"start_time" json:"start_time"`
	Duration  int       `db:"duration_minutes" json:"duration_minutes"`
	Active    bool      `db:"active" json:"active"`
}

// Holiday blocks whole days. The range is inclusive on both ends:
// holidays are date ranges, not time ranges.
type Holiday struct {
	Base
	BarberID  uuid.UUID `db:"barber_id" json:"barber_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Reason    string    `db:"reason" json:"reason,omitempty"`
}

// Covers reports whether the holiday range includes the given date.
func (h *Holiday) Covers(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(h.StartDate)) && !d.After(DateOf(h.EndDate))
}

type UpsertOpeningHoursRequest struct {
	Weekday   time.Weekday `json:"weekday" validate:"gte=0,lte=6"`
	IsOpen    bool         `json:"is_open"`
	OpenTime  string       `json:"open_time"`  // "15:04", required when open
	CloseTime string       `json:"close_time"` // "15:04", required when open
}

type CreateLunchBreakRequest struct {
	StartTime string `json:"start_time" binding:"required" validate:"required"`
	Duration  int    `json:"duration_minutes" binding:"required" validate:"required,gt=0"`
}

type CreateHolidayRequest struct {
	StartDate string `json:"start_date" binding:"required" validate:"required"`
	EndDate   string `json:"end_date" binding:"required" validate:"required"`
	Reason    string `json:"reason" validate:"max=200"`
}
