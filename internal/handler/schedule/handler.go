package schedule

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
	"github.com/qdbs/booking-api/internal/service/schedule"
	"github.com/qdbs/booking-api/pkg/httputil"
	"github.com/qdbs/booking-api/pkg/validator"
)

// Handler manages the per-barber schedule configuration: weekly
// opening hours, lunch breaks and holiday ranges.
type Handler struct {
	service   *schedule.Service
	validator *validator.Validator
}

func NewHandler(service *schedule.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/barbers/:id")
	g.GET("/opening-hours", h.ListOpeningHours)
	g.PUT("/opening-hours", h.UpsertOpeningHours)
	g.GET("/lunch-breaks", h.ListLunchBreaks)
	g.POST("/lunch-breaks", h.CreateLunchBreak)
	g.DELETE("/lunch-breaks/:breakID", h.DeleteLunchBreak)
	g.GET("/holidays", h.ListHolidays)
	g.POST("/holidays", h.CreateHoliday)
	g.DELETE("/holidays/:holidayID", h.DeleteHoliday)
}

func (h *Handler) ListOpeningHours(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	hours, err := h.service.ListOpeningHours(c.Request.Context(), barberID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, hours)
}

func (h *Handler) UpsertOpeningHours(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	var req model.UpsertOpeningHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	hours, err := h.service.UpsertOpeningHours(c.Request.Context(), barberID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, hours)
}

func (h *Handler) ListLunchBreaks(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	breaks, err := h.service.ListLunchBreaks(c.Request.Context(), barberID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, breaks)
}

func (h *Handler) CreateLunchBreak(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	var req model.CreateLunchBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	lb, err := h.service.CreateLunchBreak(c.Request.Context(), barberID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, lb)
}

func (h *Handler) DeleteLunchBreak(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}
	breakID, err := uuid.Parse(c.Param("breakID"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid lunch break ID")
		return
	}

	if err := h.service.DeleteLunchBreak(c.Request.Context(), barberID, breakID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": breakID})
}

func (h *Handler) ListHolidays(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	holidays, err := h.service.ListHolidays(c.Request.Context(), barberID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, holidays)
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	var req model.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	holiday, err := h.service.CreateHoliday(c.Request.Context(), barberID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, holiday)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}
	holidayID, err := uuid.Parse(c.Param("holidayID"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid holiday ID")
		return
	}

	if err := h.service.DeleteHoliday(c.Request.Context(), barberID, holidayID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": holidayID})
}
