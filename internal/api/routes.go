// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/logging"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Presets  PresetSource
	Sessions SessionManager
	Canvas   geometry.CanvasParams
	Options  geometry.Options
	Live     LiveConfig
	Logger   *log.Logger
	Version  string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Triangle TriangleHandler
	Presets  PresetHandler
	Live     LiveHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	eval := NewEvaluator(deps.Canvas, deps.Options)
	return &Handlers{
		Health:   NewHealthHandler(deps.Version, len(deps.Presets.All())),
		Triangle: NewTriangleHandler(eval, logger),
		Presets:  NewPresetHandler(deps.Presets, eval),
		Live:     NewLiveHandler(deps.Sessions, eval, deps.Live, logger),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Triangle evaluation
	triangleGroup := apiGroup.Group("/triangle")
	triangleGroup.POST("", handlers.Triangle.HandleComputeTriangle)
	triangleGroup.GET("", handlers.Triangle.HandleComputeTriangleQuery)
	triangleGroup.POST("/msgpack", handlers.Triangle.HandleComputeTriangleMsgpack)
	triangleGroup.GET("/svg", handlers.Triangle.HandleTriangleSVG)

	// Preset catalog
	presetGroup := apiGroup.Group("/presets")
	presetGroup.GET("", handlers.Presets.HandleListPresets)
	presetGroup.GET("/:name", handlers.Presets.HandleGetPreset)

	// Live channel
	liveGroup := apiGroup.Group("/live")
	liveGroup.GET("/ws", handlers.Live.HandleLiveSocket)
	liveGroup.GET("/:sessionId", handlers.Live.HandleLiveSession)
}

// MiddlewareConfig selects the optional middleware
type MiddlewareConfig struct {
	Logger               *log.Logger
	EnableRequestLogging bool
	RequestTimeout       time.Duration
	EnableCompression    bool
	CompressionLevel     int
	BodyLimit            string
	EnableCORS           bool
	AllowOrigins         string
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, cfg MiddlewareConfig) {
	e.HTTPErrorHandler = ErrorHandler

	if cfg.EnableRequestLogging && cfg.Logger != nil {
		e.Use(logging.RequestLogger(cfg.Logger))
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if cfg.RequestTimeout > 0 {
		e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout:      cfg.RequestTimeout,
			Skipper:      isLiveSocket,
			ErrorMessage: "Request timeout",
		}))
	}

	if cfg.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level:   cfg.CompressionLevel,
			Skipper: isLiveSocket,
		}))
	}

	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}

	if cfg.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: splitOrigins(cfg.AllowOrigins),
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}

// isLiveSocket skips middleware that would wrap the hijacked websocket writer.
func isLiveSocket(c echo.Context) bool {
	return c.Request().URL.Path == "/api/live/ws"
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
