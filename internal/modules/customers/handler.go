package customers

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
	r.GET("/:customerID", h.get)
	r.PATCH("/:customerID", h.update)
	r.DELETE("/:customerID", h.delete)
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
	customer, err := h.service.Get(c.Request.Context(), c.GetString("org_id"), c.Param("customerID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, customer)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	customer, err := h.service.Create(c.Request.Context(), c.GetString("org_id"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, customer)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	customer, err := h.service.Update(c.Request.Context(), c.GetString("org_id"), c.Param("customerID"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, customer)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("org_id"), c.Param("customerID")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
	case errors.Is(err, ErrCustomerHasAssets):
		response.Error(c, http.StatusConflict, "CUSTOMER_HAS_EQUIPMENT", "Reassign or retire the customer's equipment first")
	default:
		c.Error(err) //nolint:errcheck
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong")
	}
}
