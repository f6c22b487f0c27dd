package geometry

import (
	"fmt"
	"math"
)

// DefaultCanvas is the 350px square with a 250px triangle used by the form.
var DefaultCanvas = CanvasParams{MaxTriangleWidth: 250, CanvasWidth: 350}

// CanvasParams sizes the drawing area. The longest side is scaled to
// MaxTriangleWidth and the remaining space is split evenly as padding.
type CanvasParams struct {
	MaxTriangleWidth int `json:"maxTriangleWidth" yaml:"maxTriangleWidth"`
	CanvasWidth      int `json:"canvasWidth" yaml:"canvasWidth"`
}

// Padding returns the margin applied on every side of the triangle.
func (p CanvasParams) Padding() int {
	return (p.CanvasWidth - p.MaxTriangleWidth) / 2
}

// Validate reports ErrInvalidCanvasParams for non-positive sizes or when the
// triangle would leave no room for padding.
func (p CanvasParams) Validate() error {
	switch {
	case p.MaxTriangleWidth <= 0:
		return fmt.Errorf("%w: maxTriangleWidth must be positive, got %d", ErrInvalidCanvasParams, p.MaxTriangleWidth)
	case p.CanvasWidth <= 0:
		return fmt.Errorf("%w: canvasWidth must be positive, got %d", ErrInvalidCanvasParams, p.CanvasWidth)
	case p.MaxTriangleWidth >= p.CanvasWidth:
		return fmt.Errorf("%w: maxTriangleWidth %d must be smaller than canvasWidth %d",
			ErrInvalidCanvasParams, p.MaxTriangleWidth, p.CanvasWidth)
	}
	return nil
}

// Point is a canvas coordinate. The origin is the top-left corner and y grows
// downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Midpoint returns the arithmetic midpoint of p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

func (p Point) finite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Layout is a triangle placed on the canvas. Side lengths and angles are
// re-exposed in the rotated bottom/right/left frame so a renderer never has
// to map input sides to screen edges itself.
type Layout struct {
	Orientation Orientation `json:"orientation"`
	Scale       float64     `json:"scale"`

	Left  Point `json:"left"`
	Right Point `json:"right"`
	Top   Point `json:"top"`

	BottomMid Point `json:"bottomMid"`
	RightMid  Point `json:"rightMid"`
	LeftMid   Point `json:"leftMid"`

	BottomSide float64 `json:"bottomSide"`
	RightSide  float64 `json:"rightSide"`
	LeftSide   float64 `json:"leftSide"`

	// Angles at the top, bottom-right and bottom-left vertices, in radians.
	TopAngle   float64 `json:"topAngle"`
	RightAngle float64 `json:"rightAngle"`
	LeftAngle  float64 `json:"leftAngle"`

	TopAngleDegrees   float64 `json:"topAngleDegrees"`
	RightAngleDegrees float64 `json:"rightAngleDegrees"`
	LeftAngleDegrees  float64 `json:"leftAngleDegrees"`
}

// Project places a classified triangle on the canvas.
//
// The longest side becomes the bottom edge, scaled to p.MaxTriangleWidth and
// anchored at the bottom-left corner of the padded area. The top vertex is
// found from the right edge and the angle at the bottom-right vertex; the
// left edge is never scaled directly.
func Project(c Classification, s Sides, p CanvasParams) (Layout, error) {
	if !c.Valid {
		return Layout{}, fmt.Errorf("%w: %g, %g, %g", ErrInvalidTriangle, s.A, s.B, s.C)
	}
	if err := p.Validate(); err != nil {
		return Layout{}, err
	}

	o := OrientationOf(s)
	bottom, right, left := o.Roles()

	l := Layout{
		Orientation: o,
		BottomSide:  s.Len(bottom),
		RightSide:   s.Len(right),
		LeftSide:    s.Len(left),
		TopAngle:    c.Radians.Of(bottom),
		// The bottom-right vertex sits between the bottom and right edges,
		// facing the left edge.
		RightAngle: c.Radians.Of(left),
		LeftAngle:  c.Radians.Of(right),
	}
	l.TopAngleDegrees = c.Degrees.Of(bottom)
	l.RightAngleDegrees = c.Degrees.Of(left)
	l.LeftAngleDegrees = c.Degrees.Of(right)

	l.Scale = float64(p.MaxTriangleWidth) / l.BottomSide
	if !isFinite(l.Scale) || l.Scale <= 0 {
		return Layout{}, fmt.Errorf("%w: scale %g for bottom side %g", ErrDegenerateGeometry, l.Scale, l.BottomSide)
	}
	if !isFinite(l.TopAngle) || !isFinite(l.RightAngle) || !isFinite(l.LeftAngle) {
		return Layout{}, fmt.Errorf("%w: non-finite angle", ErrDegenerateGeometry)
	}

	normalizedBottom := l.BottomSide * l.Scale
	normalizedRight := l.RightSide * l.Scale

	pad := float64(p.Padding())
	l.Left = Point{X: pad, Y: float64(p.CanvasWidth) - pad}
	l.Right = Point{X: l.Left.X + normalizedBottom, Y: l.Left.Y}

	height := normalizedRight * math.Sin(l.RightAngle)
	offset := normalizedRight * math.Cos(l.RightAngle)
	l.Top = Point{X: l.Right.X - offset, Y: l.Right.Y - height}

	l.BottomMid = Midpoint(l.Left, l.Right)
	l.RightMid = Midpoint(l.Top, l.Right)
	l.LeftMid = Midpoint(l.Top, l.Left)

	for _, pt := range []Point{l.Left, l.Right, l.Top, l.BottomMid, l.RightMid, l.LeftMid} {
		if !pt.finite() {
			return Layout{}, fmt.Errorf("%w: non-finite coordinate", ErrDegenerateGeometry)
		}
	}
	return l, nil
}

// Result bundles a classification with its layout. Layout is nil when the
// triangle is invalid.
type Result struct {
	Classification Classification `json:"classification"`
	Layout         *Layout        `json:"layout,omitempty"`
}

// Evaluate classifies s and, when valid, projects it onto p. An invalid
// triangle is a result, not an error; errors are reserved for bad canvas
// parameters and degenerate geometry.
func Evaluate(s Sides, p CanvasParams, opts Options) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Classification: ClassifyWithOptions(s, opts)}
	if !res.Classification.Valid {
		return res, nil
	}

	l, err := Project(res.Classification, s, p)
	if err != nil {
		return res, err
	}
	res.Layout = &l
	return res, nil
}
