// Package config provides XML-based configuration for the triangles server.
package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/session"
)

// FileName is the config file looked up next to the executable.
const FileName = "triangles.config"

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"Triangles"`

	Server         ServerConfig         `xml:"Server"`
	Canvas         CanvasConfig         `xml:"Canvas"`
	Classification ClassificationConfig `xml:"Classification"`
	Live           LiveConfig           `xml:"Live"`
	Presets        PresetsConfig        `xml:"Presets"`
	Processing     ProcessingConfig     `xml:"Processing"`
	Logging        LoggingConfig        `xml:"Logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// CanvasConfig is the default drawing area used when a request omits it.
type CanvasConfig struct {
	MaxTriangleWidth int `xml:"MaxTriangleWidth"`
	CanvasWidth      int `xml:"CanvasWidth"`
}

// ClassificationConfig tunes the classifier. A zero tolerance means exact
// floating point comparison.
type ClassificationConfig struct {
	Tolerance float64 `xml:"Tolerance"`
}

// LiveConfig contains websocket live-channel settings
type LiveConfig struct {
	DebounceMillis         int `xml:"DebounceMillis"`
	SessionTimeoutMinutes  int `xml:"SessionTimeoutMinutes"`
	CleanupIntervalMinutes int `xml:"CleanupIntervalMinutes"`
	MaxSessions            int `xml:"MaxSessions"`
	MaxMessageSizeKB       int `xml:"MaxMessageSizeKB"`
}

// PresetsConfig points at an optional external preset catalog. Empty means
// the built-in catalog.
type PresetsConfig struct {
	File string `xml:"File"`
}

// ProcessingConfig contains response processing settings
type ProcessingConfig struct {
	EnableCompression bool `xml:"EnableCompression"`
	CompressionLevel  int  `xml:"CompressionLevel"`
}

// LoggingConfig controls the logger and the optional rotating log file.
type LoggingConfig struct {
	Level                string `xml:"Level"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging"`
	File                 string `xml:"File"`
	MaxSizeMB            int    `xml:"MaxSizeMB"`
	MaxBackups           int    `xml:"MaxBackups"`
	MaxAgeDays           int    `xml:"MaxAgeDays"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8089,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "64K",
		},
		Canvas: CanvasConfig{
			MaxTriangleWidth: geometry.DefaultCanvas.MaxTriangleWidth,
			CanvasWidth:      geometry.DefaultCanvas.CanvasWidth,
		},
		Live: LiveConfig{
			DebounceMillis:         200,
			SessionTimeoutMinutes:  int(session.SessionMaxAge / time.Minute),
			CleanupIntervalMinutes: 5,
			MaxSessions:            256,
			MaxMessageSizeKB:       64,
		},
		Processing: ProcessingConfig{
			EnableCompression: true,
			CompressionLevel:  5,
		},
		Logging: LoggingConfig{
			Level:                "info",
			EnableRequestLogging: true,
			MaxSizeMB:            10,
			MaxBackups:           3,
			MaxAgeDays:           28,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Triangles Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if level := os.Getenv("TRIANGLES_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}

	if file := os.Getenv("TRIANGLES_PRESETS_FILE"); file != "" {
		c.Presets.File = file
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if c.Presets.File != "" && !filepath.IsAbs(c.Presets.File) {
		c.Presets.File = filepath.Join(configDir, c.Presets.File)
	}
	if c.Logging.File != "" && !filepath.IsAbs(c.Logging.File) {
		c.Logging.File = filepath.Join(configDir, c.Logging.File)
	}
}

// Validate rejects settings the server cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if err := c.CanvasParams().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("canvas: %w", err))
	}
	if c.Classification.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("classification tolerance must not be negative, got %g", c.Classification.Tolerance))
	}
	if c.Live.DebounceMillis < 0 {
		errs = append(errs, fmt.Errorf("live debounce must not be negative, got %d", c.Live.DebounceMillis))
	}
	if c.Live.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("live max sessions must be positive, got %d", c.Live.MaxSessions))
	}
	if c.Live.MaxMessageSizeKB <= 0 {
		errs = append(errs, fmt.Errorf("live max message size must be positive, got %d", c.Live.MaxMessageSizeKB))
	}
	if c.Processing.EnableCompression && (c.Processing.CompressionLevel < -1 || c.Processing.CompressionLevel > 9) {
		errs = append(errs, fmt.Errorf("compression level %d out of range", c.Processing.CompressionLevel))
	}
	return errors.Join(errs...)
}

// CanvasParams returns the configured default canvas.
func (c *AppConfig) CanvasParams() geometry.CanvasParams {
	return geometry.CanvasParams{
		MaxTriangleWidth: c.Canvas.MaxTriangleWidth,
		CanvasWidth:      c.Canvas.CanvasWidth,
	}
}

// ClassifyOptions returns the classifier options.
func (c *AppConfig) ClassifyOptions() geometry.Options {
	return geometry.Options{Tolerance: c.Classification.Tolerance}
}

// Debounce returns the live-channel coalescing window.
func (c *AppConfig) Debounce() time.Duration {
	return time.Duration(c.Live.DebounceMillis) * time.Millisecond
}

// SessionTimeout returns how long an idle live session is kept. Zero or a
// negative value falls back to session.SessionMaxAge.
func (c *AppConfig) SessionTimeout() time.Duration {
	if c.Live.SessionTimeoutMinutes <= 0 {
		return session.SessionMaxAge
	}
	return time.Duration(c.Live.SessionTimeoutMinutes) * time.Minute
}

// CleanupInterval returns how often idle live sessions are swept.
func (c *AppConfig) CleanupInterval() time.Duration {
	return time.Duration(c.Live.CleanupIntervalMinutes) * time.Minute
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}
