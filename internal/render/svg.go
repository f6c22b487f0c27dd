package render

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
)

// bottomLabelLift raises the bottom label off the edge it names.
const bottomLabelLift = 2

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stroke    string
	fill      string
	textColor string
	fontSize  int
	precision int
}

func WithStroke(color string) SVGOption    { return func(r *svgRenderer) { r.stroke = color } }
func WithFill(color string) SVGOption      { return func(r *svgRenderer) { r.fill = color } }
func WithTextColor(color string) SVGOption { return func(r *svgRenderer) { r.textColor = color } }
func WithFontSize(px int) SVGOption        { return func(r *svgRenderer) { r.fontSize = px } }

// WithPrecision sets the number of decimals used for angle labels.
func WithPrecision(digits int) SVGOption { return func(r *svgRenderer) { r.precision = digits } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		stroke:    "black",
		fill:      "none",
		textColor: "blue",
		fontSize:  14,
		precision: 2,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SVG draws l on a square canvas of p.CanvasWidth pixels. Side lengths are
// written at the edge midpoints and angles in degrees at the vertices. Labels
// left of the triangle are end-anchored so they grow away from the edge.
func SVG(l geometry.Layout, p geometry.CanvasParams, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w := p.CanvasWidth

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, w, w, w)
	fmt.Fprintf(&buf, `  <polygon class="triangle" points="%s %s %s" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		coord(l.Left), coord(l.Right), coord(l.Top), html.EscapeString(r.fill), html.EscapeString(r.stroke))

	fmt.Fprintf(&buf, `  <g class="labels" font-family="Arial, sans-serif" font-size="%d" fill="%s">`+"\n",
		r.fontSize, html.EscapeString(r.textColor))

	r.text(&buf, "side-bottom", l.BottomMid.X, l.BottomMid.Y-bottomLabelLift, "start", formatLength(l.BottomSide))
	r.text(&buf, "side-right", l.RightMid.X, l.RightMid.Y, "start", formatLength(l.RightSide))
	r.text(&buf, "side-left", l.LeftMid.X, l.LeftMid.Y, "end", formatLength(l.LeftSide))

	r.text(&buf, "angle-right", l.Right.X, l.Right.Y, "start", r.formatAngle(l.RightAngleDegrees))
	r.text(&buf, "angle-top", l.Top.X, l.Top.Y, "start", r.formatAngle(l.TopAngleDegrees))
	r.text(&buf, "angle-left", l.Left.X, l.Left.Y, "end", r.formatAngle(l.LeftAngleDegrees))

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) text(buf *bytes.Buffer, class string, x, y float64, anchor, label string) {
	fmt.Fprintf(buf, `    <text class="%s" x="%.2f" y="%.2f" text-anchor="%s">%s</text>`+"\n",
		class, x, y, anchor, html.EscapeString(label))
}

// formatAngle rounds to r.precision decimals and drops trailing zeros, so
// a right angle reads "90" rather than "90.00".
func (r svgRenderer) formatAngle(deg float64) string {
	m := math.Pow(10, float64(r.precision))
	return strconv.FormatFloat(math.Round(deg*m)/m, 'f', -1, 64)
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func coord(p geometry.Point) string {
	return fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
}
