// handlers_health.go - Health check handlers
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	started time.Time
	presets int
}

// NewHealthHandler creates a new health handler. presets is reported so a
// misconfigured catalog file shows up in monitoring.
func NewHealthHandler(version string, presets int) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		started: time.Now(),
		presets: presets,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"presets": h.presets,
	})
}
