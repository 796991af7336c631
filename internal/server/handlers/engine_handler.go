package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/service/engine"
)

// EngineHandler exposes the reconciliation engine over HTTP.
type EngineHandler struct {
	engine *engine.Engine
	logger *zap.Logger
}

// NewEngineHandler constructs the HTTP handler adapter.
func NewEngineHandler(eng *engine.Engine, logger *zap.Logger) *EngineHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineHandler{engine: eng, logger: logger}
}

// Reconcile runs a reconciliation pass immediately.
func (h *EngineHandler) Reconcile(c *gin.Context) {
	summary, err := h.engine.RunPass(c.Request.Context())
	if err != nil {
		if errors.Is(err, engine.ErrPassInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "a pass is already running"})
			return
		}
		h.logger.Error("reconciliation pass failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "record store unavailable"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Alerts returns the current near-due alerts. The horizon query parameter
// overrides the configured default.
func (h *EngineHandler) Alerts(c *gin.Context) {
	horizon := 0
	if raw := c.Query("horizon"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "horizon must be a non-negative integer"})
			return
		}
		horizon = parsed
	}

	alerts, err := h.engine.DueAlerts(c.Request.Context(), horizon)
	if err != nil {
		h.logger.Error("near-due sweep failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "record store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}
