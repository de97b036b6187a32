package handlers

import (
	"log/slog"
	"strings"

	"github.com/dimitrije/amazing-calendar/internal/middleware"
	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/dimitrije/amazing-calendar/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type EventHandler struct {
	eventService EventServiceInterface
	logger       *slog.Logger
}

func NewEventHandler(eventService EventServiceInterface, logger *slog.Logger) *EventHandler {
	return &EventHandler{eventService: eventService, logger: logger}
}

// List is the public event directory. It does not depend on the caller.
func (h *EventHandler) List(c *drift.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "failed to list events")
		return
	}

	_ = c.JSON(200, toEventResponses(events))
}

func (h *EventHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.StartTime != nil && req.EndTime != nil && !req.StartTime.Before(*req.EndTime) {
		c.BadRequest(services.ErrInvalidTimeRange.Error())
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), userID, services.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	})
	if err != nil {
		writeError(c, h.logger, err, "failed to create event")
		return
	}

	_ = c.JSON(201, toEventResponse(event))
}

func (h *EventHandler) ListForUser(c *drift.Context) {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		c.BadRequest("email is required")
		return
	}

	result, err := h.eventService.ListForUser(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.logger, err, "failed to list user events")
		return
	}

	invited := make([]dto.InvitedEventResponse, len(result.Invited))
	for i, inv := range result.Invited {
		invited[i] = dto.InvitedEventResponse{Status: string(inv.Status), Event: toEventResponse(inv.Event)}
	}

	_ = c.JSON(200, dto.UserEventsResponse{
		User:    *toUserResponse(result.User),
		Created: toEventResponses(result.Created),
		Invited: invited,
	})
}

func (h *EventHandler) Upcoming(c *drift.Context) {
	events, err := h.eventService.Upcoming(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err, "failed to get upcoming events")
		return
	}

	_ = c.JSON(200, toEventResponses(events))
}

func (h *EventHandler) Past(c *drift.Context) {
	events, err := h.eventService.Past(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, h.logger, err, "failed to get past events")
		return
	}

	_ = c.JSON(200, toEventResponses(events))
}

func (h *EventHandler) Update(c *drift.Context) {
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

	var req dto.UpdateEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), userID, eventID, models.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	})
	if err != nil {
		writeError(c, h.logger, err, "failed to update event")
		return
	}

	_ = c.JSON(200, toEventResponse(event))
}

func (h *EventHandler) Delete(c *drift.Context) {
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

	if err := h.eventService.Delete(c.Request.Context(), userID, eventID); err != nil {
		writeError(c, h.logger, err, "failed to delete event")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "event deleted"})
}
