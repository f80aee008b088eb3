package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuspal/schedule-assistant/internal/buildinfo"
)

// Healthz is the liveness probe. It never checks dependencies, only
// that the process is serving.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": buildinfo.Version})
}

// Ready is the readiness probe: the database must answer before the
// service takes traffic.
func (h *Handler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	slotCount, err := h.db.CountSlots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"timetable": gin.H{
			"slots": slotCount,
		},
		"chat_enabled": h.responder != nil,
	})
}
