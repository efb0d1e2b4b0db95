// Package renderhttp exposes the render operation over HTTP with Fiber.
package renderhttp

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	errorslib "github.com/goliatone/go-errors"
	"github.com/goliatone/go-typeset/render"
)

// DefaultBasePath is the route the handler mounts when none is configured.
const DefaultBasePath = "/render"

// Config configures the HTTP handler.
type Config struct {
	BasePath string
	Renderer *render.Renderer
	Logger   render.Logger
}

// Request is the JSON body accepted by the render endpoint.
type Request struct {
	Options json.RawMessage `json:"options"`
	Data    json.RawMessage `json:"data"`
}

// ErrorBody describes a failed render.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Handler serves render requests.
type Handler struct {
	renderer *render.Renderer
	basePath string
	logger   render.Logger
}

// NewHandler creates a handler. Renderer is required.
func NewHandler(cfg Config) *Handler {
	base := cfg.BasePath
	if base == "" {
		base = DefaultBasePath
	}
	logger := cfg.Logger
	if logger == nil {
		logger = render.NopLogger{}
	}
	return &Handler{renderer: cfg.Renderer, basePath: base, logger: logger}
}

// RegisterRoutes mounts the render endpoint.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post(h.basePath, h.Render)
}

// Render handles POST requests carrying options and data.
func (h *Handler) Render(c *fiber.Ctx) error {
	if h == nil || h.renderer == nil {
		return WriteError(c, render.NewError(render.KindInternal, "handler is not configured", nil))
	}

	var req Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return WriteError(c, render.NewError(render.KindDeserialization, "invalid request body", err))
	}

	pdf, err := h.renderer.Render(c.UserContext(), req.Options, req.Data)
	if err != nil {
		h.logger.Infof("render request from %s rejected: %s", c.IP(), render.KindFromError(err))
		return WriteError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="document.pdf"`)
	return c.Status(http.StatusOK).Send(pdf)
}

// WriteError writes err as a JSON error response.
func WriteError(c *fiber.Ctx, err error) error {
	ge := render.AsGoError(err)
	return c.Status(statusForError(ge)).JSON(ErrorResponse{
		Error: ErrorBody{
			Message: ge.Message,
			Code:    ge.TextCode,
		},
	})
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch render.ErrorKind(err.TextCode) {
	case render.KindInputShape, render.KindCompilation:
		return http.StatusUnprocessableEntity
	case render.KindCanceled:
		return http.StatusRequestTimeout
	}
	switch err.Category {
	case errorslib.CategoryValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
