package api_test

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL   = "http://localhost:8080/api/v1"
	barberID  string
	serviceID string
)

func checkAPIServer() error {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(baseURL + "/health/live")
	if err != nil {
		return fmt.Errorf("API server not reachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API server unhealthy: %d", resp.StatusCode)
	}
	return nil
}

func TestMain(m *testing.M) {
	if url := os.Getenv("API_URL"); url != "" {
		baseURL = url + "/api/v1"
	}

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		if err := checkAPIServer(); err != nil {
			if i == maxRetries-1 {
				fmt.Printf("Error: %v\nMake sure the API server is running at %s\n", err, baseURL)
				os.Exit(1)
			}
			fmt.Printf("Waiting for API server (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}

	setupTestData()

	os.Exit(m.Run())
}

func setupTestData() {
	barberResp := makeRequest("POST", "/barbers", map[string]interface{}{
		"name":  uniqueName("Test Barber"),
		"email": fmt.Sprintf("barber%d@example.com", time.Now().UnixNano()),
		"color": "#336699",
	})
	if !barberResp.IsSuccess() {
		fmt.Printf("Failed to create barber: %s\n", barberResp.Message)
		os.Exit(1)
	}
	barberID = barberResp.GetString("id")

	serviceResp := makeRequest("POST", "/services", map[string]interface{}{
		"name":        uniqueName("Haircut"),
		"description": "Standard cut",
		"duration":    30,
		"price":       25.00,
	})
	if !serviceResp.IsSuccess() {
		fmt.Printf("Failed to create service: %s\n", serviceResp.Message)
		os.Exit(1)
	}
	serviceID = serviceResp.GetString("id")

	// Open every weekday so tests can use any future date.
	for weekday := 0; weekday <= 6; weekday++ {
		hoursResp := makeRequest("PUT", "/barbers/"+barberID+"/opening-hours", map[string]interface{}{
			"weekday":    weekday,
			"is_open":    true,
			"open_time":  "09:00",
			"close_time": "17:00",
		})
		if !hoursResp.IsSuccess() {
			fmt.Printf("Failed to set opening hours: %s\n", hoursResp.Message)
			os.Exit(1)
		}
	}
}
