package review

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tutorhub/internal/pkg/response"
	"tutorhub/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, students, tutors *gin.RouterGroup) {
	if public != nil {
		public.GET("/tutors/:id/reviews", h.ListForTutor)
	}
	if students != nil {
		students.POST("/reviews", h.Submit)
	}
	if tutors != nil {
		tutors.PUT("/reviews/:id/response", h.Reply)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rv, err := h.svc.SubmitReview(c.Request.Context(), actor, uuid.MustParse(req.BookingID), req.Rating, req.Comment)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) Reply(c *gin.Context) {
	actor, ok := response.Actor(c)
	if !ok {
		return
	}
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rv, err := h.svc.ReplyToReview(c.Request.Context(), actor, id, req.Response)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
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
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", errs)
		return
	}

	list, err := h.svc.ListTutorReviews(c.Request.Context(), tutorID, q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    list.Items,
		"meta":    list.Meta,
		"stats":   list.Statistics,
	})
}
