package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, geometry.DefaultCanvas, cfg.CanvasParams())
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout())
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval())
	assert.Equal(t, geometry.Options{}, cfg.ClassifyOptions())
	assert.Equal(t, "0.0.0.0:8089", cfg.GetServerAddr())
	assert.NoError(t, cfg.Validate())
}

func TestSessionTimeout_FallsBackToSessionMaxAge(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, session.SessionMaxAge, cfg.SessionTimeout())

	cfg.Live.SessionTimeoutMinutes = 0
	assert.Equal(t, session.SessionMaxAge, cfg.SessionTimeout())

	cfg.Live.SessionTimeoutMinutes = 2
	assert.Equal(t, 2*time.Minute, cfg.SessionTimeout())
}

func TestLoadConfig_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Canvas, cfg.Canvas)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Triangles>")
	assert.Contains(t, string(data), "<MaxTriangleWidth>250</MaxTriangleWidth>")

	// Reloading the generated file yields the same settings.
	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Canvas, again.Canvas)
	assert.Equal(t, cfg.Live, again.Live)
	assert.Equal(t, cfg.Logging, again.Logging)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	xmlDoc := `<?xml version="1.0" encoding="UTF-8"?>
<Triangles>
  <Canvas>
    <MaxTriangleWidth>400</MaxTriangleWidth>
    <CanvasWidth>500</CanvasWidth>
  </Canvas>
  <Classification>
    <Tolerance>1e-9</Tolerance>
  </Classification>
  <Presets>
    <File>presets.yaml</File>
  </Presets>
</Triangles>`
	require.NoError(t, os.WriteFile(path, []byte(xmlDoc), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, geometry.CanvasParams{MaxTriangleWidth: 400, CanvasWidth: 500}, cfg.CanvasParams())
	assert.Equal(t, 1e-9, cfg.Classification.Tolerance)
	assert.Equal(t, filepath.Join(dir, "presets.yaml"), cfg.Presets.File)
	assert.Equal(t, 8089, cfg.Server.Port, "unset sections fall back to defaults")
	assert.Equal(t, 200, cfg.Live.DebounceMillis)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("<Triangles><Canvas>"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TRIANGLES_LOG_LEVEL", "DEBUG")
	t.Setenv("TRIANGLES_PRESETS_FILE", "/etc/triangles/presets.yaml")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/etc/triangles/presets.yaml", cfg.Presets.File)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		want   string
	}{
		{"bad port", func(c *AppConfig) { c.Server.Port = 0 }, "server port"},
		{"triangle wider than canvas", func(c *AppConfig) { c.Canvas.MaxTriangleWidth = 400 }, "canvas"},
		{"negative tolerance", func(c *AppConfig) { c.Classification.Tolerance = -1 }, "tolerance"},
		{"negative debounce", func(c *AppConfig) { c.Live.DebounceMillis = -5 }, "debounce"},
		{"no sessions", func(c *AppConfig) { c.Live.MaxSessions = 0 }, "max sessions"},
		{"no message size", func(c *AppConfig) { c.Live.MaxMessageSizeKB = 0 }, "message size"},
		{"compression level", func(c *AppConfig) { c.Processing.CompressionLevel = 12 }, "compression level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("canvas error wraps sentinel", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Canvas.CanvasWidth = -1
		assert.ErrorIs(t, cfg.Validate(), geometry.ErrInvalidCanvasParams)
	})
}
