package availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/qdbs/booking-api/internal/availability"
	"github.com/qdbs/booking-api/internal/model"
	"github.com/qdbs/booking-api/internal/repository"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
	"github.com/qdbs/booking-api/pkg/httputil"
	"github.com/qdbs/booking-api/pkg/metrics"
)

// Handler exposes the availability read endpoints. Service durations
// are cached in-process: the catalog changes rarely and every slot
// query needs one.
type Handler struct {
	engine      *availability.Engine
	serviceRepo repository.ServiceRepository
	durations   *cache.Cache
	metrics     *metrics.Metrics
	daysAhead   int
}

func NewHandler(engine *availability.Engine, serviceRepo repository.ServiceRepository, m *metrics.Metrics, cacheTTL time.Duration, daysAhead int) *Handler {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if daysAhead <= 0 {
		daysAhead = 14
	}
	return &Handler{
		engine:      engine,
		serviceRepo: serviceRepo,
		durations:   cache.New(cacheTTL, 2*cacheTTL),
		metrics:     m,
		daysAhead:   daysAhead,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/availability")
	g.GET("/slots", h.GetSlots)
	g.GET("/days", h.GetFullyBookedDays)
}

type slotsResponse struct {
	BarberID uuid.UUID         `json:"barber_id"`
	Date     string            `json:"date"`
	Slots    []model.TimeOfDay `json:"slots"`
}

// GetSlots returns the bookable start times for one barber, date and
// service. An empty slots array is a successful answer, never an error.
func (h *Handler) GetSlots(c *gin.Context) {
	start := time.Now()

	barberID, err := uuid.Parse(c.Query("barber_id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber_id")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}

	duration, err := h.resolveDuration(c)
	if err != nil {
		h.observe("slots", "error", start)
		httputil.RespondWithError(c, err)
		return
	}

	slots, err := h.engine.AvailableSlots(c.Request.Context(), barberID, date, duration)
	if err != nil {
		h.observe("slots", "error", start)
		httputil.RespondWithError(c, err)
		return
	}
	if slots == nil {
		slots = []model.TimeOfDay{}
	}

	h.observe("slots", "ok", start)
	h.metrics.SlotsReturned.Observe(float64(len(slots)))

	httputil.RespondWithSuccess(c, slotsResponse{
		BarberID: barberID,
		Date:     date.Format("2006-01-02"),
		Slots:    slots,
	})
}

type fullyBookedResponse struct {
	BarberID uuid.UUID `json:"barber_id"`
	From     string    `json:"from"`
	Days     int       `json:"days"`
	FullDays []string  `json:"fully_booked_days"`
}

// GetFullyBookedDays returns the dates in the window that have no
// bookable slot, for greying out calendar days in the booking UI.
func (h *Handler) GetFullyBookedDays(c *gin.Context) {
	start := time.Now()

	barberID, err := uuid.Parse(c.Query("barber_id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber_id")
		return
	}

	from := time.Now()
	if v := c.Query("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid from, expected YYYY-MM-DD")
			return
		}
	}

	days := h.daysAhead
	if v := c.Query("days"); v != "" {
		days, err = strconv.Atoi(v)
		if err != nil || days <= 0 || days > 90 {
			httputil.RespondWithBadRequest(c, "days must be between 1 and 90")
			return
		}
	}

	duration, err := h.resolveDuration(c)
	if err != nil {
		h.observe("days", "error", start)
		httputil.RespondWithError(c, err)
		return
	}

	full, err := h.engine.FullyBookedDays(c.Request.Context(), barberID, from, days, duration)
	if err != nil {
		h.observe("days", "error", start)
		httputil.RespondWithError(c, err)
		return
	}

	formatted := make([]string, 0, len(full))
	for _, d := range full {
		formatted = append(formatted, d.Format("2006-01-02"))
	}

	h.observe("days", "ok", start)

	httputil.RespondWithSuccess(c, fullyBookedResponse{
		BarberID: barberID,
		From:     model.DateOf(from).Format("2006-01-02"),
		Days:     days,
		FullDays: formatted,
	})
}

// resolveDuration turns the service_id query parameter into a duration,
// going through the in-process cache before hitting the catalog.
func (h *Handler) resolveDuration(c *gin.Context) (time.Duration, error) {
	raw := c.Query("service_id")
	serviceID, err := uuid.Parse(raw)
	if err != nil {
		return 0, apperrors.InvalidArgument("invalid service_id", err)
	}

	if cached, ok := h.durations.Get(raw); ok {
		return cached.(time.Duration), nil
	}

	svc, err := h.serviceRepo.Get(c.Request.Context(), serviceID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve service: %w", err)
	}
	if !svc.Active {
		return 0, apperrors.InvalidArgument("service is no longer offered", nil)
	}

	duration := time.Duration(svc.Duration) * time.Minute
	h.durations.Set(raw, duration, cache.DefaultExpiration)
	return duration, nil
}

func (h *Handler) observe(operation, status string, start time.Time) {
	h.metrics.AvailabilityQueries.WithLabelValues(operation, status).Inc()
	h.metrics.AvailabilityLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
