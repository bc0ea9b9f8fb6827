package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public calendar on public and slot management on
// tutors, which must already require the TUTOR role.
func (h *Handler) RegisterRoutes(public, tutors *gin.RouterGroup) {
	if public != nil {
		public.GET("/tutors/:id/availability", h.ListForTutor)
	}
	if tutors != nil {
		tutors.POST("/availability", h.Create)
		tutors.GET("/availability/me", h.ListOwn)
		tutors.DELETE("/availability/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	in, err := req.Input()
	if err != nil {
		response.BindError(c, err)
		return
	}

	slot, err := h.svc.CreateSlot(c.Request.Context(), actor.ProfileID, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, slot)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}
	slotID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	res, err := h.svc.DeleteSlot(c.Request.Context(), actor.ProfileID, slotID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListOwn(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}

	slots, err := h.svc.ListOwn(c.Request.Context(), actor.ProfileID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slots)
}

func (h *Handler) ListForTutor(c *gin.Context) {
	tutorID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	slots, err := h.svc.ListForTutor(c.Request.Context(), tutorID, q.Free)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slots)
}
