// handlers_presets_test.go - Tests for preset handlers
package api

import (
	"net/http"
	"testing"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/ChapterSevenSeeds/triangles/internal/presets"
	"github.com/ChapterSevenSeeds/triangles/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresetHandler() PresetHandler {
	return NewPresetHandler(presets.Default(), NewEvaluator(geometry.DefaultCanvas, geometry.Options{}))
}

func TestPresetHandler_HandleListPresets(t *testing.T) {
	handler := newTestPresetHandler()
	c, rec := testutil.NewContext(t, http.MethodGet, "/api/presets", nil)

	require.NoError(t, handler.HandleListPresets(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var catalog models.PresetCatalog
	testutil.DecodeJSON(t, rec, &catalog)
	require.NotEmpty(t, catalog.Presets)
	assert.Equal(t, "right-3-4-5", catalog.Presets[0].Name)
	assert.Equal(t, presets.Default().Len(), len(catalog.Presets))
}

func TestPresetHandler_HandleGetPreset(t *testing.T) {
	tests := []struct {
		name       string
		preset     string
		wantErr    bool
		errCode    string
		wantAngles geometry.AngleClass
		wantSides  geometry.SideClass
	}{
		{name: "pythagorean", preset: "right-3-4-5", wantAngles: geometry.Right, wantSides: geometry.Scalene},
		{name: "longest side first", preset: "right-5-12-13", wantAngles: geometry.Right, wantSides: geometry.Scalene},
		{name: "equilateral", preset: "equilateral", wantAngles: geometry.Acute, wantSides: geometry.Equilateral},
		{name: "unknown", preset: "hexagon", wantErr: true, errCode: CodeNotFound},
		{name: "empty name", preset: "", wantErr: true, errCode: CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestPresetHandler()
			c, rec := testutil.NewContext(t, http.MethodGet, "/api/presets/"+tt.preset, nil)
			c.SetParamNames("name")
			c.SetParamValues(tt.preset)

			err := handler.HandleGetPreset(c)

			if tt.wantErr {
				require.Error(t, err)
				apiErr, ok := err.(*APIError)
				require.True(t, ok)
				assert.Equal(t, tt.errCode, apiErr.Code)
				return
			}
			require.NoError(t, err)

			var resp presetResponse
			testutil.DecodeJSON(t, rec, &resp)
			assert.Equal(t, tt.preset, resp.Preset.Name)
			require.NotNil(t, resp.Result)
			assert.True(t, resp.Result.Data.Valid)
			assert.Equal(t, tt.wantAngles, resp.Result.Data.AngleClassification)
			assert.Equal(t, tt.wantSides, resp.Result.Data.SideClassification)
			assert.NotNil(t, resp.Result.DisplayData)
		})
	}
}
