package models

import "github.com/ChapterSevenSeeds/triangles/internal/geometry"

// TriangleRequest is the inbound form payload. Sides are pointers so a
// missing field can be told apart from a zero.
type TriangleRequest struct {
	SideA                  *float64 `json:"sideA" msgpack:"sideA"`
	SideB                  *float64 `json:"sideB" msgpack:"sideB"`
	SideC                  *float64 `json:"sideC" msgpack:"sideC"`
	CanvasTriangleMaxWidth *int     `json:"canvasTriangleMaxWidth,omitempty" msgpack:"canvasTriangleMaxWidth,omitempty"`
	CanvasWidth            *int     `json:"canvasWidth,omitempty" msgpack:"canvasWidth,omitempty"`
}

// Sides returns the request sides. Callers must validate presence first.
func (r *TriangleRequest) Sides() geometry.Sides {
	return geometry.Sides{A: deref(r.SideA), B: deref(r.SideB), C: deref(r.SideC)}
}

// Canvas returns the requested canvas, falling back to def for omitted fields.
func (r *TriangleRequest) Canvas(def geometry.CanvasParams) geometry.CanvasParams {
	p := def
	if r.CanvasTriangleMaxWidth != nil {
		p.MaxTriangleWidth = *r.CanvasTriangleMaxWidth
	}
	if r.CanvasWidth != nil {
		p.CanvasWidth = *r.CanvasWidth
	}
	return p
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// TriangleData is the classification part of a response. Everything but
// Valid is omitted for an invalid triangle. Angles are pointers so a valid
// angle that evaluates to zero is still sent.
type TriangleData struct {
	Valid               bool                `json:"valid" msgpack:"valid"`
	SideClassification  geometry.SideClass  `json:"sideClassification,omitempty" msgpack:"sideClassification,omitempty"`
	AngleClassification geometry.AngleClass `json:"angleClassification,omitempty" msgpack:"angleClassification,omitempty"`
	AngleARadians       *float64            `json:"angleARadians,omitempty" msgpack:"angleARadians,omitempty"`
	AngleBRadians       *float64            `json:"angleBRadians,omitempty" msgpack:"angleBRadians,omitempty"`
	AngleCRadians       *float64            `json:"angleCRadians,omitempty" msgpack:"angleCRadians,omitempty"`
	AngleADegrees       *float64            `json:"angleADegrees,omitempty" msgpack:"angleADegrees,omitempty"`
	AngleBDegrees       *float64            `json:"angleBDegrees,omitempty" msgpack:"angleBDegrees,omitempty"`
	AngleCDegrees       *float64            `json:"angleCDegrees,omitempty" msgpack:"angleCDegrees,omitempty"`
}

// NewTriangleData flattens a classification.
func NewTriangleData(c geometry.Classification) TriangleData {
	if !c.Valid {
		return TriangleData{}
	}
	return TriangleData{
		Valid:               true,
		SideClassification:  c.SideClass,
		AngleClassification: c.AngleClass,
		AngleARadians:       ptr(c.Radians.A),
		AngleBRadians:       ptr(c.Radians.B),
		AngleCRadians:       ptr(c.Radians.C),
		AngleADegrees:       ptr(c.Degrees.A),
		AngleBDegrees:       ptr(c.Degrees.B),
		AngleCDegrees:       ptr(c.Degrees.C),
	}
}

func ptr(v float64) *float64 { return &v }

// DisplayData is the layout part of a response, in the flat array-of-two
// form canvas clients spread straight into moveTo/lineTo.
type DisplayData struct {
	Orientation             geometry.Orientation `json:"orientation" msgpack:"orientation"`
	Scale                   float64              `json:"scale" msgpack:"scale"`
	LeftAnchorPoint         [2]float64           `json:"leftAnchorPoint" msgpack:"leftAnchorPoint"`
	RightAnchorPoint        [2]float64           `json:"rightAnchorPoint" msgpack:"rightAnchorPoint"`
	TopAnchorPoint          [2]float64           `json:"topAnchorPoint" msgpack:"topAnchorPoint"`
	LeftRightAnchorMidpoint [2]float64           `json:"leftRightAnchorMidpoint" msgpack:"leftRightAnchorMidpoint"`
	RightTopAnchorMidpoint  [2]float64           `json:"rightTopAnchorMidpoint" msgpack:"rightTopAnchorMidpoint"`
	TopLeftAnchorMidpoint   [2]float64           `json:"topLeftAnchorMidpoint" msgpack:"topLeftAnchorMidpoint"`
	BottomSide              float64              `json:"bottomSide" msgpack:"bottomSide"`
	RightSide               float64              `json:"rightSide" msgpack:"rightSide"`
	LeftSide                float64              `json:"leftSide" msgpack:"leftSide"`
	LeftAngleDegrees        float64              `json:"leftAngleDegrees" msgpack:"leftAngleDegrees"`
	RightAngleDegrees       float64              `json:"rightAngleDegrees" msgpack:"rightAngleDegrees"`
	TopAngleDegrees         float64              `json:"topAngleDegrees" msgpack:"topAngleDegrees"`
	LeftAngleRadians        float64              `json:"leftAngleRadians" msgpack:"leftAngleRadians"`
	RightAngleRadians       float64              `json:"rightAngleRadians" msgpack:"rightAngleRadians"`
	TopAngleRadians         float64              `json:"topAngleRadians" msgpack:"topAngleRadians"`
}

// NewDisplayData flattens a layout.
func NewDisplayData(l geometry.Layout) *DisplayData {
	pt := func(p geometry.Point) [2]float64 { return [2]float64{p.X, p.Y} }
	return &DisplayData{
		Orientation:             l.Orientation,
		Scale:                   l.Scale,
		LeftAnchorPoint:         pt(l.Left),
		RightAnchorPoint:        pt(l.Right),
		TopAnchorPoint:          pt(l.Top),
		LeftRightAnchorMidpoint: pt(l.BottomMid),
		RightTopAnchorMidpoint:  pt(l.RightMid),
		TopLeftAnchorMidpoint:   pt(l.LeftMid),
		BottomSide:              l.BottomSide,
		RightSide:               l.RightSide,
		LeftSide:                l.LeftSide,
		LeftAngleDegrees:        l.LeftAngleDegrees,
		RightAngleDegrees:       l.RightAngleDegrees,
		TopAngleDegrees:         l.TopAngleDegrees,
		LeftAngleRadians:        l.LeftAngle,
		RightAngleRadians:       l.RightAngle,
		TopAngleRadians:         l.TopAngle,
	}
}

// TriangleResponse is the combined result returned to clients.
type TriangleResponse struct {
	Data        TriangleData `json:"data" msgpack:"data"`
	DisplayData *DisplayData `json:"displayData,omitempty" msgpack:"displayData,omitempty"`
	Description string       `json:"description" msgpack:"description"`
}
