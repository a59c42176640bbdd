package booking

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
	"github.com/qdbs/booking-api/internal/service/booking"
	apperrors "github.com/qdbs/booking-api/pkg/errors"
	"github.com/qdbs/booking-api/pkg/httputil"
	"github.com/qdbs/booking-api/pkg/metrics"
	"github.com/qdbs/booking-api/pkg/validator"
)

type Handler struct {
	service   *booking.Service
	validator *validator.Validator
	metrics   *metrics.Metrics
}

func NewHandler(service *booking.Service, v *validator.Validator, m *metrics.Metrics) *Handler {
	return &Handler{service: service, validator: v, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/bookings")
	g.POST("", h.CreateBooking)
	g.GET("", h.ListBookings)
	g.GET("/:id", h.GetBooking)
	g.POST("/:id/cancel", h.CancelBooking)
	g.POST("/:id/complete", h.CompleteBooking)
	g.POST("/:id/no-show", h.MarkNoShow)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			h.metrics.BookingConflicts.Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.BookingsCreated.Inc()
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid booking ID")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) ListBookings(c *gin.Context) {
	filters := &model.BookingFilters{}

	if v := c.Query("barber_id"); v != "" {
		barberID, err := uuid.Parse(v)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid barber_id")
			return
		}
		filters.BarberID = barberID
	}
	if v := c.Query("service_id"); v != "" {
		serviceID, err := uuid.Parse(v)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid service_id")
			return
		}
		filters.ServiceID = serviceID
	}
	if v := c.Query("status"); v != "" {
		filters.Status = model.BookingStatus(v)
	}
	if v := c.Query("start_date"); v != "" {
		startDate, err := time.Parse("2006-01-02", v)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		filters.StartDate = startDate
	}
	if v := c.Query("end_date"); v != "" {
		endDate, err := time.Parse("2006-01-02", v)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		filters.EndDate = endDate
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, bookings)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid booking ID")
		return
	}

	var req cancelRequest
	// Body is optional; an empty reason is allowed.
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.CancelBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.BookingsCanceled.Inc()
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid booking ID")
		return
	}

	b, err := h.service.CompleteBooking(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid booking ID")
		return
	}

	b, err := h.service.MarkNoShow(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}
