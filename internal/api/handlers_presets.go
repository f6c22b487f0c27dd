// handlers_presets.go - Preset catalog handlers
package api

import (
	"errors"
	"net/http"

	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/ChapterSevenSeeds/triangles/internal/presets"
	"github.com/labstack/echo/v4"
)

// PresetHandlerImpl implements the PresetHandler interface
type PresetHandlerImpl struct {
	source PresetSource
	eval   *Evaluator
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(source PresetSource, eval *Evaluator) PresetHandler {
	return &PresetHandlerImpl{
		source: source,
		eval:   eval,
	}
}

// presetResponse pairs a preset with its evaluation on the default canvas.
type presetResponse struct {
	Preset models.Preset            `json:"preset"`
	Result *models.TriangleResponse `json:"result"`
}

// HandleListPresets returns the whole catalog
func (h *PresetHandlerImpl) HandleListPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, models.PresetCatalog{Presets: h.source.All()})
}

// HandleGetPreset returns one preset evaluated with the default canvas
func (h *PresetHandlerImpl) HandleGetPreset(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return NewValidationError("name", "is required")
	}

	p, err := h.source.Find(name)
	if errors.Is(err, presets.ErrPresetNotFound) {
		return NewNotFoundError("preset", name)
	}
	if err != nil {
		return NewInternalError("failed to look up preset", err)
	}

	s := p.Sides()
	ev, err := h.eval.Evaluate(&models.TriangleRequest{SideA: &s.A, SideB: &s.B, SideC: &s.C}, bodyFields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presetResponse{Preset: p, Result: ev.Response})
}
