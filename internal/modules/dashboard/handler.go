package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dieselx/internal/pkg/response"
)

type Handler struct {
	service *Service
	live    *LiveFeed
}

func NewHandler(service *Service, live *LiveFeed) *Handler {
	return &Handler{service: service, live: live}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.view)
	r.GET("/stats", h.stats)
	r.GET("/alerts", h.alerts)
	r.GET("/live", h.live.Serve)
}

func (h *Handler) view(c *gin.Context) {
	// Unparseable values fall back to the service default.
	limit, _ := strconv.Atoi(c.Query("limit"))

	view, err := h.service.View(c.Request.Context(), c.GetString("org_id"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.GetString("org_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) alerts(c *gin.Context) {
	alerts, err := h.service.EquipmentAlerts(c.Request.Context(), c.GetString("org_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, alerts)
}

func (h *Handler) fail(c *gin.Context, err error) {
	c.Error(err) //nolint:errcheck
	response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong")
}
