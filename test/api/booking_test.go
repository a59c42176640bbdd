package api_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFlow(t *testing.T) {
	date := futureDate(14)

	createResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"guest_name": "Booking Tester",
		"date":       date,
		"time":       "10:00",
	})
	require.True(t, createResp.IsSuccess(), "Failed to create booking: %s", createResp.Message)
	bookingID := createResp.GetString("id")
	require.NotEmpty(t, bookingID)
	assert.Equal(t, "confirmed", createResp.GetString("status"))
	assert.Equal(t, float64(30), createResp.Data["duration_minutes"], "duration is snapshotted from the service")

	// Same slot again must conflict.
	dupResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"guest_name": "Second Guest",
		"date":       date,
		"time":       "10:00",
	})
	assert.False(t, dupResp.IsSuccess(), "double booking must be rejected")

	// An overlapping but non-identical start must conflict too... if
	// the grid allowed it. 10:30 touches 10:00-10:30 only at the
	// boundary, so it is legal.
	adjacentResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"guest_name": "Adjacent Guest",
		"date":       date,
		"time":       "10:30",
	})
	assert.True(t, adjacentResp.IsSuccess(), "back-to-back booking must be allowed: %s", adjacentResp.Message)

	// Get booking
	getResp := makeRequest("GET", "/bookings/"+bookingID, nil)
	require.True(t, getResp.IsSuccess())
	assert.Equal(t, "Booking Tester", getResp.GetString("guest_name"))

	// Cancel booking
	cancelResp := makeRequest("POST", fmt.Sprintf("/bookings/%s/cancel", bookingID), map[string]interface{}{
		"reason": "changed plans",
	})
	require.True(t, cancelResp.IsSuccess(), "Failed to cancel booking: %s", cancelResp.Message)
	assert.Equal(t, "cancelled", cancelResp.GetString("status"))

	// Cancelling again must conflict.
	againResp := makeRequest("POST", fmt.Sprintf("/bookings/%s/cancel", bookingID), nil)
	assert.False(t, againResp.IsSuccess())

	// The cancelled slot is free again.
	rebookResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"guest_name": "Replacement Guest",
		"date":       date,
		"time":       "10:00",
	})
	assert.True(t, rebookResp.IsSuccess(), "cancelled slot must be bookable again: %s", rebookResp.Message)
}

func TestBookingValidation(t *testing.T) {
	resp := makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"guest_name": "Validation Tester",
		"date":       "not-a-date",
		"time":       "10:00",
	})
	assert.False(t, resp.IsSuccess())

	resp = makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"date":       futureDate(14),
		"time":       "10:00",
	})
	assert.False(t, resp.IsSuccess(), "guest_name is required")
}

func TestBookingOutsideOpeningHours(t *testing.T) {
	resp := makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"guest_name": "Early Bird",
		"date":       futureDate(14),
		"time":       "07:00",
	})
	assert.False(t, resp.IsSuccess(), "slot before opening must be rejected")
}

func TestLunchBreakBlocksBooking(t *testing.T) {
	date := futureDate(28)

	breakResp := makeRequest("POST", "/barbers/"+barberID+"/lunch-breaks", map[string]interface{}{
		"start_time":       "12:00",
		"duration_minutes": 60,
	})
	require.True(t, breakResp.IsSuccess(), "Failed to create lunch break: %s", breakResp.Message)
	breakID := breakResp.GetString("id")

	bookResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"barber_id":  barberID,
		"service_id": serviceID,
		"guest_name": "Hungry Guest",
		"date":       date,
		"time":       "12:30",
	})
	assert.False(t, bookResp.IsSuccess(), "slot inside the lunch break must be rejected")

	deleteResp := makeRequest("DELETE", "/barbers/"+barberID+"/lunch-breaks/"+breakID, nil)
	require.True(t, deleteResp.IsSuccess())
}
