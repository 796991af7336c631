package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/service/ledger"
	"github.com/chanqt/boardinghouse/internal/service/reporting"
)

// TenantHandler exposes tenant removal and reporting endpoints.
type TenantHandler struct {
	removed   *ledger.Service
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewTenantHandler constructs the tenant HTTP handler.
func NewTenantHandler(removed *ledger.Service, reportingSvc *reporting.Service, logger *zap.Logger) *TenantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantHandler{removed: removed, reporting: reportingSvc, logger: logger}
}

// Remove soft-deletes a tenant by appending a ledger entry. Removing an
// already removed tenant returns the original entry.
func (h *TenantHandler) Remove(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	entry, err := h.removed.Remove(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to remove tenant", zap.Int("tenant_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist removal"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Restore returns a removed tenant to the active set.
func (h *TenantHandler) Restore(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	if err := h.removed.Restore(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to restore tenant", zap.Int("tenant_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to restore tenant"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Removal returns the ledger entry for a tenant, if present.
func (h *TenantHandler) Removal(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	removedAt, found := h.removed.RemovalDate(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant is not removed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenantId": id, "dateRemoved": removedAt})
}

// Report builds the tenant report. With export=true the report is also
// appended to the configured sheet.
func (h *TenantHandler) Report(c *gin.Context) {
	build := h.reporting.BuildReport
	if c.Query("export") == "true" {
		build = h.reporting.ExportReport
	}

	report, err := build(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build tenant report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "record store unavailable"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func tenantID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant id must be a positive integer"})
		return 0, false
	}
	return id, true
}
