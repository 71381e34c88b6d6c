package portal

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dieselx/internal/pkg/response"
	"dieselx/internal/storage"
)

const (
	operatorCookieName   = "dieselx-operator"
	operatorCookieMaxAge = 180 * 24 * 60 * 60
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public portal endpoints. No auth: access control
// is possession of the QR code.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/operator", h.getOperator)
	r.GET("/:equipmentID", h.getEquipment)
	r.GET("/:equipmentID/template", h.getTemplate)
	r.GET("/:equipmentID/history", h.getHistory)
	r.POST("/:equipmentID/reading", h.updateReading)
	r.POST("/:equipmentID/prestart", h.submitPrestart)
	r.POST("/:equipmentID/defect", h.submitDefect)
	r.POST("/:equipmentID/breakdown", h.submitBreakdown)
}

func (h *Handler) getEquipment(c *gin.Context) {
	view, err := h.service.GetEquipment(c.Request.Context(), c.Param("equipmentID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) getTemplate(c *gin.Context) {
	tpl, err := h.service.GetTemplate(c.Request.Context(), c.Param("equipmentID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, tpl)
}

func (h *Handler) getHistory(c *gin.Context) {
	entries, err := h.service.GetHistory(c.Request.Context(), c.Param("equipmentID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

func (h *Handler) updateReading(c *gin.Context) {
	var body struct {
		Reading *int `json:"reading" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || *body.Reading < 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "reading must be a non-negative number")
		return
	}

	res, err := h.service.UpdateReading(c.Request.Context(), c.Param("equipmentID"), *body.Reading)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) submitPrestart(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected multipart form data")
		return
	}

	req := &PrestartRequest{
		OperatorName:  formValue(form, "operator_name"),
		OperatorPhone: formValue(form, "operator_phone"),
	}
	req.EquipmentReading, err = strconv.Atoi(formValue(form, "equipment_reading"))
	if err != nil || req.EquipmentReading < 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "equipment_reading must be a non-negative number")
		return
	}

	if err := json.Unmarshal([]byte(formValue(form, "items")), &req.Items); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "items must be a JSON array")
		return
	}

	// Files arrive keyed by the checklist item they belong to.
	for i := range req.Items {
		req.Items[i].Media = form.File["media_"+req.Items[i].TemplateItemID]
	}

	res, err := h.service.SubmitPrestart(c.Request.Context(), c.Param("equipmentID"), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.rememberOperator(c, req.OperatorName, req.OperatorPhone)
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) submitDefect(c *gin.Context) {
	h.handleReport(c, false)
}

func (h *Handler) submitBreakdown(c *gin.Context) {
	h.handleReport(c, true)
}

func (h *Handler) handleReport(c *gin.Context, breakdown bool) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected multipart form data")
		return
	}

	req := &ReportRequest{
		OperatorName:  formValue(form, "operator_name"),
		OperatorPhone: formValue(form, "operator_phone"),
		Description:   formValue(form, "description"),
		Severity:      formValue(form, "severity"),
		Photos:        form.File["photos"],
		Videos:        form.File["videos"],
	}
	req.EquipmentReading, err = strconv.Atoi(formValue(form, "equipment_reading"))
	if err != nil || req.EquipmentReading < 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "equipment_reading must be a non-negative number")
		return
	}

	var res *SubmitResult
	if breakdown {
		res, err = h.service.SubmitBreakdownReport(c.Request.Context(), c.Param("equipmentID"), req)
	} else {
		res, err = h.service.SubmitDefectReport(c.Request.Context(), c.Param("equipmentID"), req)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.rememberOperator(c, req.OperatorName, req.OperatorPhone)
	response.Success(c, http.StatusCreated, res)
}

// getOperator returns the remembered operator details for form prefill.
func (h *Handler) getOperator(c *gin.Context) {
	raw, err := c.Cookie(operatorCookieName)
	if err != nil {
		response.Success(c, http.StatusOK, OperatorPrefill{})
		return
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		response.Success(c, http.StatusOK, OperatorPrefill{})
		return
	}

	var prefill OperatorPrefill
	if err := json.Unmarshal(decoded, &prefill); err != nil {
		response.Success(c, http.StatusOK, OperatorPrefill{})
		return
	}
	response.Success(c, http.StatusOK, prefill)
}

func (h *Handler) rememberOperator(c *gin.Context, name, phone string) {
	payload, err := json.Marshal(OperatorPrefill{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	})
	if err != nil {
		return
	}
	c.SetCookie(operatorCookieName, base64.URLEncoding.EncodeToString(payload),
		operatorCookieMaxAge, "/", "", false, false)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrEquipmentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
	case errors.Is(err, ErrNoTemplate):
		response.Error(c, http.StatusNotFound, "NO_TEMPLATE", "No pre-start template is assigned to this equipment")
	case errors.Is(err, ErrReadingRegression):
		response.Error(c, http.StatusBadRequest, "READING_REGRESSION", err.Error())
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	default:
		c.Error(err) //nolint:errcheck
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong")
	}
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}
