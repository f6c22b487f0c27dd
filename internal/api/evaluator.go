// evaluator.go - Request validation and evaluation shared by HTTP and websocket
package api

import (
	"math"
	"strconv"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/ChapterSevenSeeds/triangles/internal/render"
	"github.com/labstack/echo/v4"
)

// Field names reported in validation errors, per input surface.
var (
	bodyFields  = [3]string{"sideA", "sideB", "sideC"}
	queryFields = [3]string{"a", "b", "c"}
)

// Evaluator turns a TriangleRequest into a TriangleResponse using the
// configured default canvas and classifier options.
type Evaluator struct {
	canvas geometry.CanvasParams
	opts   geometry.Options
}

// NewEvaluator creates an evaluator with the given defaults.
func NewEvaluator(canvas geometry.CanvasParams, opts geometry.Options) *Evaluator {
	return &Evaluator{canvas: canvas, opts: opts}
}

// Evaluation is a computed response together with the inputs that produced
// it, for renderers that need the raw layout.
type Evaluation struct {
	Response *models.TriangleResponse
	Result   geometry.Result
	Canvas   geometry.CanvasParams
}

// Evaluate validates req and runs the geometry core. Errors are *APIError.
func (ev *Evaluator) Evaluate(req *models.TriangleRequest, fields [3]string) (*Evaluation, error) {
	if err := validateSides(req, fields); err != nil {
		return nil, err
	}

	canvas := req.Canvas(ev.canvas)
	res, err := geometry.Evaluate(req.Sides(), canvas, ev.opts)
	if err != nil {
		return nil, FromGeometryError(err)
	}

	resp := &models.TriangleResponse{
		Data:        models.NewTriangleData(res.Classification),
		Description: render.Describe(res.Classification),
	}
	if res.Layout != nil {
		resp.DisplayData = models.NewDisplayData(*res.Layout)
	}
	return &Evaluation{Response: resp, Result: res, Canvas: canvas}, nil
}

func validateSides(req *models.TriangleRequest, fields [3]string) *APIError {
	for i, v := range []*float64{req.SideA, req.SideB, req.SideC} {
		switch {
		case v == nil:
			return NewValidationError(fields[i], "is required")
		case math.IsNaN(*v) || math.IsInf(*v, 0):
			return NewValidationError(fields[i], "must be a finite number")
		case *v <= 0:
			return NewValidationError(fields[i], "must be greater than zero")
		}
	}
	return nil
}

// parseQueryRequest reads a, b, c, maxWidth and canvasWidth from the query
// string. Absent parameters stay nil.
func parseQueryRequest(c echo.Context) (*models.TriangleRequest, error) {
	req := &models.TriangleRequest{}
	sides := []**float64{&req.SideA, &req.SideB, &req.SideC}
	for i, name := range queryFields {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, NewValidationError(name, "must be a number")
		}
		*sides[i] = &v
	}

	canvas := []struct {
		name string
		dst  **int
	}{
		{"maxWidth", &req.CanvasTriangleMaxWidth},
		{"canvasWidth", &req.CanvasWidth},
	}
	for _, f := range canvas {
		raw := c.QueryParam(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewValidationError(f.name, "must be an integer")
		}
		*f.dst = &v
	}
	return req, nil
}
