// Package render turns geometry results into things people look at: a
// one-line description and an SVG drawing of the laid-out triangle.
package render

import (
	"fmt"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
)

// Describe returns the sentence shown under the form.
func Describe(c geometry.Classification) string {
	if !c.Valid {
		s := c.Sides.Sorted()
		return fmt.Sprintf("The triangle is invalid: %g + %g ≤ %g", s[0], s[1], s[2])
	}
	if c.AngleClass == "" {
		return fmt.Sprintf("These sides produce a valid %s triangle, but its angles could not be computed.", c.SideClass)
	}
	return fmt.Sprintf("These sides produce a valid %s, %s triangle.", c.AngleClass, c.SideClass)
}
