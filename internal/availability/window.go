package availability

import (
	"time"

	"github.com/qdbs/booking-api/internal/model"
)

// Window is the opening window for one barber on one calendar date.
// A closed window carries zero open/close times.
type Window struct {
	Date      time.Time       `json:"date"`
	Open      bool            `json:"open"`
	OpenTime  model.TimeOfDay `json:"open_time"`
	CloseTime model.TimeOfDay `json:"close_time"`
}

// Closed returns the closed window for the given date.
func Closed(date time.Time) Window {
	return Window{Date: model.DateOf(date)}
}

// Contains reports whether the candidate range [start, end) lies
// entirely inside the window. The end may touch closing time exactly.
func (w Window) Contains(start, end model.TimeOfDay) bool {
	return w.Open && start >= w.OpenTime && end <= w.CloseTime
}
