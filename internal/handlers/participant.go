package handlers

import (
	"log/slog"

	"github.com/dimitrije/amazing-calendar/internal/middleware"
	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type ParticipantHandler struct {
	participationService ParticipationServiceInterface
	logger               *slog.Logger
}

func NewParticipantHandler(participationService ParticipationServiceInterface, logger *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{participationService: participationService, logger: logger}
}

func (h *ParticipantHandler) Invite(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		c.BadRequest("invalid event id")
		return
	}

	var req dto.InviteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	participation, err := h.participationService.Invite(c.Request.Context(), userID, eventID, req.Email)
	if err != nil {
		writeError(c, h.logger, err, "failed to invite participant")
		return
	}

	_ = c.JSON(201, toParticipantResponse(participation))
}

func (h *ParticipantHandler) List(c *drift.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		c.BadRequest("invalid event id")
		return
	}

	parts, err := h.participationService.List(c.Request.Context(), eventID)
	if err != nil {
		writeError(c, h.logger, err, "failed to list participants")
		return
	}

	_ = c.JSON(200, toParticipantResponses(parts))
}

func (h *ParticipantHandler) Respond(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		c.BadRequest("invalid event id")
		return
	}

	var req dto.RespondRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	participation, err := h.participationService.Respond(c.Request.Context(), userID, eventID, models.ParticipationStatus(req.Status))
	if err != nil {
		writeError(c, h.logger, err, "failed to respond to invitation")
		return
	}

	_ = c.JSON(200, toParticipantResponse(participation))
}

func (h *ParticipantHandler) Remove(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		c.BadRequest("invalid event id")
		return
	}

	participantID, err := uuid.Parse(c.Param("participantId"))
	if err != nil {
		c.BadRequest("invalid participant id")
		return
	}

	if err := h.participationService.Remove(c.Request.Context(), userID, eventID, participantID); err != nil {
		writeError(c, h.logger, err, "failed to remove participant")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "participant removed"})
}

// ListMine returns the caller's own invitations across all events.
func (h *ParticipantHandler) ListMine(c *drift.Context) {
	parts, err := h.participationService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err, "failed to list invitations")
		return
	}

	_ = c.JSON(200, toParticipantResponses(parts))
}
