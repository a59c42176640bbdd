package availability

import (
	"time"

	"github.com/qdbs/booking-api/internal/model"
)

// GenerateSlots produces the ordered candidate start times for a day:
// every step starting at opening time whose start is strictly before
// closing time. Whether a slot's end fits before close is not decided
// here; the evaluator is the final authority on that.
func GenerateSlots(win Window, step time.Duration) []model.TimeOfDay {
	if !win.Open || step < time.Minute {
		return nil
	}

	stepMinutes := model.TimeOfDay(step / time.Minute)
	slots := make([]model.TimeOfDay, 0, (win.CloseTime-win.OpenTime)/stepMinutes+1)
	for t := win.OpenTime; t < win.CloseTime; t += stepMinutes {
		slots = append(slots, t)
	}
	return slots
}
