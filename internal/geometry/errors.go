package geometry

import "errors"

var (
	// ErrInvalidTriangle indicates the sides fail the strict triangle inequality.
	ErrInvalidTriangle = errors.New("geometry: sides do not form a valid triangle")
	// ErrDegenerateGeometry indicates a non-finite scale, angle or coordinate.
	ErrDegenerateGeometry = errors.New("geometry: degenerate geometry")
	// ErrInvalidCanvasParams indicates unusable canvas sizing.
	ErrInvalidCanvasParams = errors.New("geometry: invalid canvas parameters")
)
