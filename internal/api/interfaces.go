// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// TriangleHandler evaluates triangles over plain HTTP
type TriangleHandler interface {
	HandleComputeTriangle(c echo.Context) error
	HandleComputeTriangleQuery(c echo.Context) error
	HandleComputeTriangleMsgpack(c echo.Context) error
	HandleTriangleSVG(c echo.Context) error
}

// PresetHandler serves the preset catalog
type PresetHandler interface {
	HandleListPresets(c echo.Context) error
	HandleGetPreset(c echo.Context) error
}

// LiveHandler serves the websocket live channel and its session status
type LiveHandler interface {
	HandleLiveSocket(c echo.Context) error
	HandleLiveSession(c echo.Context) error
}

// SessionManager defines the interface for live session management
// This allows mocking in tests
type SessionManager interface {
	Open() (*models.LiveSession, error)
	GetSession(id string) (*models.LiveSession, bool)
	Submit(id string, seq int64) (bool, error)
	IsLatest(id string, seq int64) bool
	Complete(id string, seq int64)
	TouchSession(id string) bool
	Close(id string)
}

// PresetSource looks up named example triangles
type PresetSource interface {
	All() []models.Preset
	Find(name string) (models.Preset, error)
}
