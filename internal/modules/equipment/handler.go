package equipment

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
	r.GET("/:equipmentID", h.get)
	r.PATCH("/:equipmentID", h.update)
	r.POST("/:equipmentID/activate", h.activate)
	r.POST("/:equipmentID/deactivate", h.deactivate)
	r.PATCH("/:equipmentID/operating-status", h.setOperatingStatus)
	r.PUT("/:equipmentID/template", h.assignTemplate)
	r.GET("/:equipmentID/qr", h.qrCode)
	r.GET("/:equipmentID/qr.png", h.qrCodePNG)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.GetString("org_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	eq, err := h.service.Get(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, eq)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	eq, err := h.service.Create(c.Request.Context(), c.GetString("org_id"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, eq)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	eq, err := h.service.Update(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, eq)
}

func (h *Handler) activate(c *gin.Context) {
	if err := h.service.Activate(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "active"})
}

func (h *Handler) deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "inactive"})
}

func (h *Handler) setOperatingStatus(c *gin.Context) {
	var req OperatingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	eq, err := h.service.SetOperatingStatus(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID"), req.OperatingStatus)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, eq)
}

func (h *Handler) assignTemplate(c *gin.Context) {
	var req struct {
		TemplateID string `json:"template_id" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.AssignTemplate(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID"), req.TemplateID); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assigned": true})
}

func (h *Handler) qrCode(c *gin.Context) {
	view, err := h.service.QRCode(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) qrCodePNG(c *gin.Context) {
	png, err := h.service.QRCodePNG(c.Request.Context(), c.GetString("org_id"), c.Param("equipmentID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEquipmentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
	case errors.Is(err, ErrCustomerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
	case errors.Is(err, ErrReadingRegression):
		response.Error(c, http.StatusBadRequest, "READING_REGRESSION", err.Error())
	default:
		c.Error(err) //nolint:errcheck
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong")
	}
}
