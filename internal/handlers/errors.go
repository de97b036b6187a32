package handlers

import (
	"errors"
	"log/slog"

	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

// writeError maps service errors onto status codes. Anything outside the
// taxonomy is logged and reported as fallback with a 500.
func writeError(c *drift.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.Unauthorized("not authenticated")
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden(err.Error())
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidInput):
		c.BadRequest(err.Error())
	default:
		logger.Error(fallback, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.InternalServerError(fallback)
	}
}
