// Package geometry classifies a triangle from its three side lengths and
// projects it onto a square canvas for drawing.
//
// The package is split into two steps that are always used in order:
//
//   - Classify decides validity (strict triangle inequality), the side class
//     (equilateral, isosceles, scalene), the angle class (acute, obtuse, right)
//     and the three interior angles via the law of cosines.
//   - Project picks the canonical orientation (longest side on the bottom),
//     scales the triangle to CanvasParams.MaxTriangleWidth and returns the
//     three vertices plus one label anchor per edge.
//
// Every function is pure: no shared state, no I/O. Results may be computed
// concurrently from any number of goroutines.
//
// Equality checks are exact by default. Integer right triangles such as
// 3-4-5 therefore classify as right (math.Acos(0) is exactly math.Pi/2),
// while right triangles with irrational sides such as (1, 1, √2) usually land
// on obtuse or acute. Options.Tolerance enables an epsilon comparison for
// callers that prefer geometric correctness over bit-exact compatibility.
//
// Errors:
//
//   - ErrInvalidTriangle: Project was handed a classification with Valid == false.
//   - ErrDegenerateGeometry: scale, an angle or a coordinate is not finite.
//   - ErrInvalidCanvasParams: non-positive sizes or no room for padding.
package geometry
