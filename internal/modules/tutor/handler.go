package tutor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/pagination"
	"tutorhub/internal/pkg/response"
	"tutorhub/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public directory and profile read, and the admin
// approval queue. Either group may be nil.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/tutors", h.List)
		public.GET("/tutors/:id", h.Get)
	}
	if admin != nil {
		admin.GET("/tutors/pending", h.ListPending)
		admin.PATCH("/tutors/:id/approve", h.Approve)
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
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

	items, meta, err := h.svc.List(c.Request.Context(), f, q.Page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, items, meta)
}

func (h *Handler) ListPending(c *gin.Context) {
	var page pagination.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(page); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", errs)
		return
	}

	items, meta, err := h.svc.ListPending(c.Request.Context(), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, items, meta)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	t, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}
