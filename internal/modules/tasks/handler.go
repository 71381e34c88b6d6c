package tasks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dieselx/internal/pkg/response"
	"dieselx/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.list)
	r.POST("", h.create)
	r.GET("/:taskID", h.get)
	r.GET("/:taskID/transitions", h.transitions)
	r.PATCH("/:taskID/status", h.updateStatus)
	r.PATCH("/:taskID/schedule", h.schedule)
	r.PATCH("/:taskID/assign", h.assign)
}

func (h *Handler) list(c *gin.Context) {
	var f ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters")
		return
	}

	items, err := h.service.List(c.Request.Context(), c.GetString("org_id"), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	task, err := h.service.Get(c.Request.Context(), c.GetString("org_id"), c.Param("taskID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	task, err := h.service.Create(c.Request.Context(), c.GetString("org_id"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, task)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	task, err := h.service.UpdateStatus(c.Request.Context(), c.GetString("org_id"), c.Param("taskID"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}

func (h *Handler) schedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	task, err := h.service.Schedule(c.Request.Context(), c.GetString("org_id"), c.Param("taskID"), req.ScheduledDate)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}

func (h *Handler) assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	task, err := h.service.Assign(c.Request.Context(), c.GetString("org_id"), c.Param("taskID"), req.MechanicID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}

func (h *Handler) transitions(c *gin.Context) {
	view, err := h.service.Transitions(c.Request.Context(), c.GetString("org_id"), c.Param("taskID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
	case errors.Is(err, ErrEquipmentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	default:
		c.Error(err) //nolint:errcheck
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong")
	}
}
