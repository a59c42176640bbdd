package barber

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qdbs/booking-api/internal/model"
	"github.com/qdbs/booking-api/internal/service/barber"
	"github.com/qdbs/booking-api/pkg/httputil"
	"github.com/qdbs/booking-api/pkg/validator"
)

type Handler struct {
	service   *barber.Service
	validator *validator.Validator
}

func NewHandler(service *barber.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/barbers")
	g.POST("", h.CreateBarber)
	g.GET("", h.ListBarbers)
	g.GET("/:id", h.GetBarber)
	g.PUT("/:id", h.UpdateBarber)
	g.DELETE("/:id", h.DeleteBarber)
}

func (h *Handler) CreateBarber(c *gin.Context) {
	var req model.CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateBarber(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetBarber(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	b, err := h.service.GetBarber(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) ListBarbers(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "true"))

	barbers, err := h.service.ListBarbers(c.Request.Context(), activeOnly)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, barbers)
}

func (h *Handler) UpdateBarber(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	var req model.UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	b, err := h.service.UpdateBarber(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) DeleteBarber(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid barber ID")
		return
	}

	if err := h.service.DeleteBarber(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}
