package geometry

import "math"

// SideClass classifies a triangle by how many of its sides are equal.
type SideClass string

const (
	Equilateral SideClass = "equilateral"
	Isosceles   SideClass = "isosceles"
	Scalene     SideClass = "scalene"
)

// AngleClass classifies a triangle by its largest angle.
type AngleClass string

const (
	Acute  AngleClass = "acute"
	Obtuse AngleClass = "obtuse"
	Right  AngleClass = "right"
)

// Options tunes classification.
type Options struct {
	// Tolerance switches side and right-angle comparisons from exact equality
	// to |x-y| <= Tolerance. Zero keeps exact comparisons.
	Tolerance float64
}

// Classification is the outcome of Classify. SideClass, AngleClass and the
// angles are only set when Valid is true.
type Classification struct {
	Sides      Sides      `json:"sides"`
	Valid      bool       `json:"valid"`
	SideClass  SideClass  `json:"sideClass,omitempty"`
	AngleClass AngleClass `json:"angleClass,omitempty"`
	Radians    Angles     `json:"radians"`
	Degrees    Angles     `json:"degrees"`
}

// Classify classifies the triangle with sides a, b and c using exact
// comparisons.
func Classify(a, b, c float64) Classification {
	return ClassifyWithOptions(Sides{A: a, B: b, C: c}, Options{})
}

// ClassifyWithOptions classifies s. Non-positive or non-finite lengths never
// pass the triangle inequality and yield Valid == false.
func ClassifyWithOptions(s Sides, opts Options) Classification {
	out := Classification{Sides: s}

	sorted := s.Sorted()
	if !(sorted[0]+sorted[1] > sorted[2]) {
		return out
	}
	out.Valid = true

	out.Radians = Angles{
		A: angleOpposite(s, SideA),
		B: angleOpposite(s, SideB),
		C: angleOpposite(s, SideC),
	}
	out.Degrees = out.Radians.Degrees()
	out.SideClass = classifySides(s, opts.Tolerance)
	out.AngleClass = classifyAngles(out.Radians, opts.Tolerance)
	return out
}

// angleOpposite applies the law of cosines for the angle facing side x.
func angleOpposite(s Sides, x Side) float64 {
	y, z := x.next(), x.next().next()
	lx, ly, lz := s.Len(x), s.Len(y), s.Len(z)
	return math.Acos((ly*ly + lz*lz - lx*lx) / (2 * ly * lz))
}

func classifySides(s Sides, tol float64) SideClass {
	eq := func(x, y float64) bool {
		if tol > 0 {
			return math.Abs(x-y) <= tol
		}
		return x == y
	}

	switch {
	case eq(s.A, s.B) && eq(s.B, s.C):
		return Equilateral
	case eq(s.A, s.B) || eq(s.A, s.C) || eq(s.B, s.C):
		return Isosceles
	default:
		return Scalene
	}
}

// classifyAngles checks acute, then obtuse, then right. The order matters:
// with exact comparisons a triangle whose largest angle is a hair off π/2 is
// acute or obtuse, never right.
func classifyAngles(r Angles, tol float64) AngleClass {
	lo, hi := halfPi, halfPi
	if tol > 0 {
		lo, hi = halfPi-tol, halfPi+tol
	}

	switch {
	case r.A < lo && r.B < lo && r.C < lo:
		return Acute
	case r.A > hi || r.B > hi || r.C > hi:
		return Obtuse
	case tol > 0 && r.finite():
		return Right
	case r.A == halfPi || r.B == halfPi || r.C == halfPi:
		return Right
	}
	// NaN angles fall through every comparison.
	return ""
}
