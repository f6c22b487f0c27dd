package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const angleTolerance = 1e-9

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		sides      Sides
		wantValid  bool
		wantSides  SideClass
		wantAngles AngleClass
	}{
		{"equilateral", Sides{5, 5, 5}, true, Equilateral, Acute},
		{"isosceles obtuse", Sides{5, 5, 8}, true, Isosceles, Obtuse},
		{"isosceles first and last", Sides{7, 3, 7}, true, Isosceles, Acute},
		{"isosceles last two", Sides{2, 3, 3}, true, Isosceles, Acute},
		{"scalene right 3-4-5", Sides{3, 4, 5}, true, Scalene, Right},
		{"scalene right 5-12-13 unordered", Sides{13, 5, 12}, true, Scalene, Right},
		{"scalene acute", Sides{4, 5, 6}, true, Scalene, Acute},
		{"scalene obtuse", Sides{2, 3, 4}, true, Scalene, Obtuse},
		{"degenerate", Sides{1, 1, 2}, false, "", ""},
		{"degenerate unordered", Sides{2, 1, 1}, false, "", ""},
		{"inequality fails", Sides{1, 2, 10}, false, "", ""},
		{"zero side", Sides{0, 5, 5}, false, "", ""},
		{"negative side", Sides{-1, 5, 5}, false, "", ""},
		{"all zero", Sides{0, 0, 0}, false, "", ""},
		{"NaN side", Sides{math.NaN(), 5, 5}, false, "", ""},
		{"infinite side", Sides{math.Inf(1), 5, 5}, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyWithOptions(tt.sides, Options{})

			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantSides, got.SideClass)
			assert.Equal(t, tt.wantAngles, got.AngleClass)
			if !math.IsNaN(tt.sides.A) {
				assert.Equal(t, tt.sides, got.Sides)
			}
			if !tt.wantValid {
				assert.Equal(t, Angles{}, got.Radians, "angles must not be computed for invalid triangles")
				assert.Equal(t, Angles{}, got.Degrees)
			}
		})
	}
}

func TestClassify_AngleSumIsPi(t *testing.T) {
	cases := []Sides{
		{3, 4, 5},
		{5, 5, 5},
		{5, 5, 8},
		{0.1, 0.2, 0.25},
		{1000, 999.5, 3.2},
		{7.25, 3.5, 9.125},
		{1, 1, math.Sqrt2},
	}
	for _, s := range cases {
		got := ClassifyWithOptions(s, Options{})
		require.True(t, got.Valid, "sides %+v", s)
		assert.InDelta(t, math.Pi, got.Radians.Sum(), angleTolerance, "sides %+v", s)
		assert.InDelta(t, 180.0, got.Degrees.Sum(), 1e-7, "sides %+v", s)
	}
}

func TestClassify_InvalidWheneverTwoSmallestDoNotExceedLargest(t *testing.T) {
	for s0 := 1.0; s0 <= 6; s0++ {
		for s1 := s0; s1 <= 6; s1++ {
			for s2 := s0 + s1; s2 <= s0+s1+3; s2++ {
				for _, perm := range [][3]float64{
					{s0, s1, s2}, {s0, s2, s1}, {s1, s0, s2},
					{s1, s2, s0}, {s2, s0, s1}, {s2, s1, s0},
				} {
					got := Classify(perm[0], perm[1], perm[2])
					assert.False(t, got.Valid, "sides %v", perm)
				}
			}
		}
	}
}

func TestClassify_RightTriangle345(t *testing.T) {
	got := Classify(3, 4, 5)

	require.True(t, got.Valid)
	assert.Equal(t, Scalene, got.SideClass)

	// math.Acos(0) is exactly π/2, so the exact comparison fires here.
	assert.Equal(t, math.Pi/2, got.Radians.C)
	assert.Equal(t, Right, got.AngleClass)
	assert.InDelta(t, 90.0, got.Degrees.C, angleTolerance)
	assert.InDelta(t, math.Acos(0.8), got.Radians.A, angleTolerance)
	assert.InDelta(t, math.Acos(0.6), got.Radians.B, angleTolerance)
}

func TestClassify_EquilateralAngles(t *testing.T) {
	got := Classify(5, 5, 5)

	require.True(t, got.Valid)
	assert.Equal(t, Equilateral, got.SideClass)
	assert.Equal(t, Acute, got.AngleClass)
	for _, side := range []Side{SideA, SideB, SideC} {
		assert.InDelta(t, math.Pi/3, got.Radians.Of(side), angleTolerance)
		assert.InDelta(t, 60.0, got.Degrees.Of(side), 1e-7)
	}
}

func TestClassify_IrrationalRightTriangle(t *testing.T) {
	sides := Sides{1, 1, math.Sqrt2}

	exact := ClassifyWithOptions(sides, Options{})
	require.True(t, exact.Valid)
	assert.Equal(t, Isosceles, exact.SideClass)
	assert.Equal(t, Obtuse, exact.AngleClass, "floating point pushes the angle just past π/2")

	tolerant := ClassifyWithOptions(sides, Options{Tolerance: 1e-9})
	assert.Equal(t, Right, tolerant.AngleClass)
}

func TestClassify_ToleranceOnSides(t *testing.T) {
	x, y := 0.1, 0.2
	sides := Sides{x + y, 0.3, 0.3}

	exact := ClassifyWithOptions(sides, Options{})
	assert.Equal(t, Isosceles, exact.SideClass)

	tolerant := ClassifyWithOptions(sides, Options{Tolerance: 1e-12})
	assert.Equal(t, Equilateral, tolerant.SideClass)
}

func TestClassify_OverflowingSidesYieldNoAngleClass(t *testing.T) {
	got := Classify(1e200, 1e200, 1e200)

	assert.True(t, got.Valid)
	assert.True(t, math.IsNaN(got.Radians.A))
	assert.Equal(t, AngleClass(""), got.AngleClass)

	tolerant := ClassifyWithOptions(Sides{1e200, 1e200, 1e200}, Options{Tolerance: 1e-9})
	assert.Equal(t, AngleClass(""), tolerant.AngleClass)
}

func TestDegrees(t *testing.T) {
	assert.InDelta(t, 180.0, Degrees(math.Pi), 1e-12)
	assert.Equal(t, 0.0, Degrees(0))
	assert.InDelta(t, 90.0, Degrees(math.Pi/2), 1e-12)
}

func TestSidesSorted(t *testing.T) {
	s := Sides{A: 9, B: 2, C: 5}
	assert.Equal(t, [3]float64{2, 5, 9}, s.Sorted())
	assert.Equal(t, Sides{A: 9, B: 2, C: 5}, s, "sorting must not disturb labels")
}
