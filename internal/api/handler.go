package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/preemiealert/go-preemie-alerts/internal/ingestion"
	"github.com/preemiealert/go-preemie-alerts/internal/models"
	"github.com/preemiealert/go-preemie-alerts/internal/query"
	"github.com/preemiealert/go-preemie-alerts/internal/repository"
	"github.com/preemiealert/go-preemie-alerts/internal/stream"
	"github.com/preemiealert/go-preemie-alerts/internal/web"
)

const serviceVersion = "1.0.3"

type Handler struct {
	queries     *query.Service
	ingest      *ingestion.Service
	broadcaster *stream.Broadcaster
}

func NewHandler(queries *query.Service, ingest *ingestion.Service, broadcaster *stream.Broadcaster) *Handler {
	return &Handler{
		queries:     queries,
		ingest:      ingest,
		broadcaster: broadcaster,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/health", h.health)
	r.GET("/dashboard", h.dashboard)
	r.GET("/api/alerts", h.getAlerts)
	r.GET("/api/alerts/stream", h.streamAlerts)
	r.POST("/api/notifications", h.postNotification)
	r.GET("/api/statistics", h.getStatistics)
}

func (h *Handler) getAlerts(c *gin.Context) {
	params := query.Params{
		Periodo:   c.Query("periodo"),
		Urgencia:  c.Query("urgencia"),
		Municipio: c.Query("municipio"),
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			params.Limit = lim
		}
	}

	resp, err := h.queries.Alerts(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) postNotification(c *gin.Context) {
	var n models.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification payload"})
		return
	}

	alert, err := h.ingest.Ingest(c.Request.Context(), &n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record notification"})
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Broadcast(alert)
	}

	c.JSON(http.StatusCreated, query.ToAlert(*alert))
}

func (h *Handler) getStatistics(c *gin.Context) {
	resp, err := h.queries.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "online", "version": serviceVersion})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) dashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.Dashboard())
}
