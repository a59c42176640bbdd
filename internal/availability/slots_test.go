package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qdbs/booking-api/internal/model"
)

func TestGenerateSlots_ThirtyMinuteGrid(t *testing.T) {
	slots := GenerateSlots(window(9, 0, 17, 0), 30*time.Minute)

	require.Len(t, slots, 16)
	assert.Equal(t, model.NewTimeOfDay(9, 0), slots[0])
	assert.Equal(t, model.NewTimeOfDay(16, 30), slots[len(slots)-1])
}

func TestGenerateSlots_LastStartStrictlyBeforeClose(t *testing.T) {
	// 09:00-10:00 at a 45-minute step: 09:00 and 09:45 both start
	// before close, even though 09:45 cannot fit a 45-minute service.
	slots := GenerateSlots(window(9, 0, 10, 0), 45*time.Minute)

	require.Len(t, slots, 2)
	assert.Equal(t, model.NewTimeOfDay(9, 45), slots[1])
}

func TestGenerateSlots_ClosedWindow(t *testing.T) {
	assert.Empty(t, GenerateSlots(Closed(testDay), 30*time.Minute))
}

func TestGenerateSlots_CustomStep(t *testing.T) {
	slots := GenerateSlots(window(9, 0, 12, 0), 15*time.Minute)
	assert.Len(t, slots, 12)
}

func TestGenerateSlots_InvalidStep(t *testing.T) {
	assert.Empty(t, GenerateSlots(window(9, 0, 17, 0), 0))
}
