package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/response"
	"tutorhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes groups the role-scoped router groups the handler mounts on. Each
// group must already carry its auth and role middleware. Nil groups are
// skipped.
type Routes struct {
	Authed   *gin.RouterGroup
	Students *gin.RouterGroup
	Tutors   *gin.RouterGroup
	Admin    *gin.RouterGroup
}

func (h *Handler) RegisterRoutes(r Routes) {
	if r.Students != nil {
		r.Students.POST("/bookings", h.CreateBooking)
	}
	if r.Authed != nil {
		r.Authed.GET("/bookings", h.ListMine)
		r.Authed.GET("/bookings/:id", h.Get)
		r.Authed.PATCH("/bookings/:id/cancel", h.Cancel)
	}
	if r.Tutors != nil {
		r.Tutors.PATCH("/bookings/:id/confirm", h.Confirm)
		r.Tutors.PATCH("/bookings/:id/complete", h.Complete)
	}
	if r.Admin != nil {
		r.Admin.GET("/bookings", h.ListAll)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), actor, req.Input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Confirm(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.ConfirmBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Cancel accepts an optional {"reason": "..."} body.
func (h *Handler) Cancel(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	b, err := h.service.CancelBooking(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Complete(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.CompleteBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}

	var q UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", errs)
		return
	}

	items, meta, err := h.service.ListUserBookings(c.Request.Context(), actor, domain.BookingStatus(q.Status), q.Page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, items, meta)
}

func (h *Handler) ListAll(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", errs)
		return
	}
	f, err := q.Filter()
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, meta, err := h.service.ListBookings(c.Request.Context(), f, q.Page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, items, meta)
}
