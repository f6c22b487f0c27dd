package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/ChapterSevenSeeds/triangles/internal/api"
	"github.com/ChapterSevenSeeds/triangles/internal/config"
	"github.com/ChapterSevenSeeds/triangles/internal/logging"
	"github.com/ChapterSevenSeeds/triangles/internal/presets"
	"github.com/ChapterSevenSeeds/triangles/internal/session"
	"github.com/ChapterSevenSeeds/triangles/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "triangles: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}

	logger, logCloser, err := logging.New(os.Stderr, logging.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	catalog, err := loadPresets(cfg.Presets.File, logger)
	if err != nil {
		return err
	}

	sessionMgr := session.NewManagerWithLimit(cfg.Live.MaxSessions)
	go cleanupSessions(ctx, sessionMgr, cfg, logger.WithPrefix("live"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(io.Discard)

	api.SetupMiddleware(e, api.MiddlewareConfig{
		Logger:               logger,
		EnableRequestLogging: cfg.Logging.EnableRequestLogging,
		RequestTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		EnableCompression:    cfg.Processing.EnableCompression,
		CompressionLevel:     cfg.Processing.CompressionLevel,
		BodyLimit:            cfg.Server.BodyLimit,
		EnableCORS:           cfg.Server.EnableCORS,
		AllowOrigins:         cfg.Server.AllowOrigins,
	})

	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Presets:  catalog,
		Sessions: sessionMgr,
		Canvas:   cfg.CanvasParams(),
		Options:  cfg.ClassifyOptions(),
		Live: api.LiveConfig{
			Debounce:       cfg.Debounce(),
			MaxMessageSize: int64(cfg.Live.MaxMessageSizeKB) * 1024,
		},
		Logger:  logger,
		Version: Version,
	}))

	// Register embedded frontend after the API so /api routes win
	embeddedMode := web.HasEmbeddedFiles()
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			logger.Warn("failed to register static routes", "err", err)
			embeddedMode = false
		}
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      e,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	printBanner(configPath, cfg, catalog.Len(), embeddedMode)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// resolveConfigPath returns TRIANGLES_CONFIG or the config file next to the
// executable.
func resolveConfigPath() (string, error) {
	if p := os.Getenv("TRIANGLES_CONFIG"); p != "" {
		return p, nil
	}
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exePath), config.FileName), nil
}

func loadPresets(file string, logger *log.Logger) (*presets.Catalog, error) {
	if file == "" {
		return presets.Default(), nil
	}
	catalog, err := presets.LoadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets %s: %w", file, err)
	}
	logger.WithPrefix("presets").Info("loaded catalog", "file", file, "count", catalog.Len())
	return catalog, nil
}

func cleanupSessions(ctx context.Context, mgr *session.Manager, cfg *config.AppConfig, logger *log.Logger) {
	interval := cfg.CleanupInterval()
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mgr.CleanupOldSessions(cfg.SessionTimeout()); n > 0 {
				logger.Debug("removed idle sessions", "count", n, "remaining", mgr.Count())
			}
		}
	}
}

func printBanner(configPath string, cfg *config.AppConfig, presetCount int, embedded bool) {
	mode := "API only"
	if embedded {
		mode = "Embedded form"
	}
	canvas := cfg.CanvasParams()

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Triangles Server                                ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Canvas:    %-46s║\n", fmt.Sprintf("%dpx triangle on %dpx", canvas.MaxTriangleWidth, canvas.CanvasWidth))
	fmt.Printf("║  Presets:   %-46d║\n", presetCount)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embedded {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}
}
