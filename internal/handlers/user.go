package handlers

import (
	"log/slog"

	"github.com/dimitrije/amazing-calendar/internal/middleware"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService UserServiceInterface
	logger      *slog.Logger
}

func NewUserHandler(userService UserServiceInterface, logger *slog.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err, "failed to get user")
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}
