package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 30), parsed)

	// Postgres TIME format.
	parsed, err = ParseTimeOfDay("14:00:00")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(14, 0), parsed)

	_, err = ParseTimeOfDay("not a time")
	assert.Error(t, err)
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "09:05", NewTimeOfDay(9, 5).String())
	assert.Equal(t, "16:30", NewTimeOfDay(16, 30).String())
}

func TestTimeOfDay_At(t *testing.T) {
	date := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	at := NewTimeOfDay(14, 30).At(date)
	assert.Equal(t, time.Date(2026, time.September, 15, 14, 30, 0, 0, time.UTC), at)
}

func TestTimeOfDay_Add(t *testing.T) {
	assert.Equal(t, NewTimeOfDay(10, 15), NewTimeOfDay(9, 45).Add(30*time.Minute))
}

func TestTimeOfDay_JSON(t *testing.T) {
	data, err := json.Marshal(NewTimeOfDay(13, 0))
	require.NoError(t, err)
	assert.Equal(t, `"13:00"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"08:45"`), &parsed))
	assert.Equal(t, NewTimeOfDay(8, 45), parsed)
}

func TestHoliday_Covers(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
	}
	h := Holiday{StartDate: day(10), EndDate: day(12)}

	assert.False(t, h.Covers(day(9)))
	assert.True(t, h.Covers(day(10)))
	assert.True(t, h.Covers(day(11)))
	assert.True(t, h.Covers(day(12)))
	assert.False(t, h.Covers(day(13)))
}
