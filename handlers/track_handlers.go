package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizinteltz/api/metrics"
	"bizinteltz/api/models"
	"bizinteltz/api/store"
)

const backendTimeout = 5 * time.Second

type AnalyticsHandlers struct {
	AnalyticsStore *store.AnalyticsStore
	log            *zap.Logger
}

func NewAnalyticsHandlers(s *store.AnalyticsStore, log *zap.Logger) *AnalyticsHandlers {
	return &AnalyticsHandlers{AnalyticsStore: s, log: log.Named("track")}
}

// TrackEvent handles POST /track. The response is the same whether or not the
// action was counted.
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	var req models.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event := models.AnalyticsEvent{
		EventID:    uuid.New().String(),
		BusinessID: req.BusinessID,
		Action:     req.Action,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Timestamp:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), backendTimeout)
	defer cancel()

	if _, err := h.AnalyticsStore.Track(ctx, event); err != nil {
		h.log.Error("failed to record tracking event", zap.String("event_id", event.EventID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to record event")
		return
	}
	metrics.TrackEvents.WithLabelValues(metrics.ActionLabel(req.Action)).Inc()

	c.JSON(http.StatusOK, gin.H{"status": "Event logged"})
}

func (h *AnalyticsHandlers) Counts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), backendTimeout)
	defer cancel()

	counts, err := h.AnalyticsStore.Counts(ctx)
	if err != nil {
		h.log.Error("failed to read counters", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to read analytics")
		return
	}
	c.JSON(http.StatusOK, counts)
}
