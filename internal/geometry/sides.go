package geometry

import (
	"fmt"
	"math"
	"sort"
)

// halfPi is the threshold between acute and obtuse angles.
const halfPi = math.Pi / 2

// Side identifies one of the three input sides.
type Side int

const (
	SideA Side = iota
	SideB
	SideC
)

var sideNames = [3]string{"a", "b", "c"}

func (s Side) String() string {
	if s < SideA || s > SideC {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// next returns the cyclic successor a -> b -> c -> a. The law of cosines and
// the orientation table both walk the sides in this order.
func (s Side) next() Side {
	return (s + 1) % 3
}

// Sides holds the three labeled side lengths. The labels survive the whole
// pipeline so a caller can always tell which physical side ended up where.
type Sides struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
}

// Len returns the length of side s.
func (s Sides) Len(side Side) float64 {
	switch side {
	case SideA:
		return s.A
	case SideB:
		return s.B
	default:
		return s.C
	}
}

// Sorted returns the lengths in ascending order.
func (s Sides) Sorted() [3]float64 {
	out := [3]float64{s.A, s.B, s.C}
	sort.Float64s(out[:])
	return out
}

// Angles holds one interior angle per side, each opposite the side of the
// same name.
type Angles struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// Of returns the angle opposite side s.
func (a Angles) Of(side Side) float64 {
	switch side {
	case SideA:
		return a.A
	case SideB:
		return a.B
	default:
		return a.C
	}
}

// Sum returns A + B + C.
func (a Angles) Sum() float64 {
	return a.A + a.B + a.C
}

// Degrees converts every angle from radians to degrees.
func (a Angles) Degrees() Angles {
	return Angles{A: Degrees(a.A), B: Degrees(a.B), C: Degrees(a.C)}
}

func (a Angles) finite() bool {
	return isFinite(a.A) && isFinite(a.B) && isFinite(a.C)
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return 180 / math.Pi * radians
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Orientation records which input side was placed on the bottom edge.
type Orientation string

const (
	BottomIsA Orientation = "bottom-is-a"
	BottomIsB Orientation = "bottom-is-b"
	BottomIsC Orientation = "bottom-is-c"
)

// OrientationOf picks the bottom edge: the longest side, ties going to the
// first one in the order a, b, c.
func OrientationOf(s Sides) Orientation {
	switch {
	case s.A >= s.B && s.A >= s.C:
		return BottomIsA
	case s.B >= s.A && s.B >= s.C:
		return BottomIsB
	default:
		return BottomIsC
	}
}

// Bottom returns the side placed on the bottom edge.
func (o Orientation) Bottom() Side {
	switch o {
	case BottomIsB:
		return SideB
	case BottomIsC:
		return SideC
	default:
		return SideA
	}
}

// Roles returns the sides drawn as the bottom, right and left edges.
//
//	bottom a -> right b, left c
//	bottom b -> right c, left a
//	bottom c -> right a, left b
func (o Orientation) Roles() (bottom, right, left Side) {
	bottom = o.Bottom()
	right = bottom.next()
	left = right.next()
	return bottom, right, left
}
