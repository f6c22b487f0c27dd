// handlers_triangle.go - Triangle evaluation handlers
package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/ChapterSevenSeeds/triangles/internal/render"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEApplicationMsgpack is the content type of MessagePack bodies.
const MIMEApplicationMsgpack = "application/msgpack"

// TriangleHandlerImpl implements the TriangleHandler interface
type TriangleHandlerImpl struct {
	eval   *Evaluator
	logger *log.Logger
}

// NewTriangleHandler creates a new triangle handler
func NewTriangleHandler(eval *Evaluator, logger *log.Logger) TriangleHandler {
	return &TriangleHandlerImpl{
		eval:   eval,
		logger: logger,
	}
}

// HandleComputeTriangle evaluates a JSON TriangleRequest body
func (h *TriangleHandlerImpl) HandleComputeTriangle(c echo.Context) error {
	var req models.TriangleRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	ev, err := h.evaluate(&req, bodyFields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev.Response)
}

// HandleComputeTriangleQuery evaluates sides given as query parameters
func (h *TriangleHandlerImpl) HandleComputeTriangleQuery(c echo.Context) error {
	req, err := parseQueryRequest(c)
	if err != nil {
		return err
	}

	ev, err := h.evaluate(req, queryFields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev.Response)
}

// HandleComputeTriangleMsgpack accepts a JSON or MessagePack body and always
// answers in MessagePack
func (h *TriangleHandlerImpl) HandleComputeTriangleMsgpack(c echo.Context) error {
	var req models.TriangleRequest
	if isMsgpack(c.Request().Header.Get(echo.HeaderContentType)) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return NewBadRequestError("failed to read request body", err)
		}
		if err := msgpack.Unmarshal(body, &req); err != nil {
			return NewBadRequestError("invalid msgpack body", err)
		}
	} else if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	ev, err := h.evaluate(&req, bodyFields)
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(ev.Response)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, MIMEApplicationMsgpack, data)
}

// HandleTriangleSVG renders the triangle from query parameters as SVG
func (h *TriangleHandlerImpl) HandleTriangleSVG(c echo.Context) error {
	req, err := parseQueryRequest(c)
	if err != nil {
		return err
	}

	ev, err := h.evaluate(req, queryFields)
	if err != nil {
		return err
	}
	if ev.Result.Layout == nil {
		return NewUnprocessableError(CodeInvalidTriangle, ev.Response.Description, nil)
	}

	var opts []render.SVGOption
	if stroke := c.QueryParam("stroke"); stroke != "" {
		opts = append(opts, render.WithStroke(stroke))
	}
	if fill := c.QueryParam("fill"); fill != "" {
		opts = append(opts, render.WithFill(fill))
	}

	svg := render.SVG(*ev.Result.Layout, ev.Canvas, opts...)
	return c.Blob(http.StatusOK, "image/svg+xml", svg)
}

func (h *TriangleHandlerImpl) evaluate(req *models.TriangleRequest, fields [3]string) (*Evaluation, error) {
	ev, err := h.eval.Evaluate(req, fields)
	if err != nil {
		h.logger.Debug("evaluation rejected", "err", err)
		return nil, err
	}
	h.logger.Debug("evaluated",
		"sides", req.Sides(),
		"valid", ev.Response.Data.Valid,
		"angles", ev.Response.Data.AngleClassification,
	)
	return ev, nil
}

func isMsgpack(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, MIMEApplicationMsgpack) || strings.HasPrefix(ct, "application/x-msgpack")
}
