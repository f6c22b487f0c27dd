// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ChapterSevenSeeds/triangles/internal/geometry"
	"github.com/labstack/echo/v4"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes shared by the HTTP and websocket surfaces.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCanvas      = "INVALID_CANVAS"
	CodeDegenerateGeometry = "DEGENERATE_GEOMETRY"
	CodeInvalidTriangle    = "INVALID_TRIANGLE"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
	CodeUnavailable        = "SERVICE_UNAVAILABLE"
	CodeStaleSequence      = "STALE_SEQUENCE"
)

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewValidationError creates a 400 validation error for a specific field
func NewValidationError(field, reason string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: fmt.Sprintf("validation failed for field: %s", field),
		Details: reason,
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(resource string, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewUnprocessableError creates a 422 error for well-formed input that cannot
// be drawn.
func NewUnprocessableError(code, message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    code,
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewServiceUnavailableError creates a 503 Service Unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    CodeUnavailable,
		Message: message,
	}
}

// NewStaleSequenceError creates a 409 error for a live request whose seq is
// missing or not greater than one already seen in the session
func NewStaleSequenceError(seq int64) *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Code:    CodeStaleSequence,
		Message: "sequence number must increase",
		Details: fmt.Sprintf("seq %d is not newer than the last request", seq),
	}
}

// FromGeometryError maps the geometry sentinels onto API errors.
func FromGeometryError(err error) *APIError {
	switch {
	case errors.Is(err, geometry.ErrInvalidCanvasParams):
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    CodeInvalidCanvas,
			Message: "invalid canvas parameters",
			Details: err.Error(),
		}
	case errors.Is(err, geometry.ErrDegenerateGeometry):
		return NewUnprocessableError(CodeDegenerateGeometry, "triangle cannot be drawn", err)
	case errors.Is(err, geometry.ErrInvalidTriangle):
		return NewUnprocessableError(CodeInvalidTriangle, "sides do not form a triangle", err)
	default:
		return NewInternalError("evaluation failed", err)
	}
}

// ErrorHandler renders every handler error as an APIError body.
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &httpErr):
		apiErr = &APIError{
			Status:  httpErr.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNKNOWN_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(apiErr.Status)
		return
	}
	_ = c.JSON(apiErr.Status, apiErr)
}
