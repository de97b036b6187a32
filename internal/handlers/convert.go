package handlers

import (
	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/pkg/dto"
)

func toUserResponse(u *models.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toEventResponse(e *models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Location:     e.Location,
		CreatorID:    e.CreatorID,
		Creator:      toUserResponse(e.Creator),
		Participants: toParticipantResponses(e.Participants),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEventResponses(events []models.Event) []dto.EventResponse {
	response := make([]dto.EventResponse, len(events))
	for i := range events {
		response[i] = toEventResponse(&events[i])
	}
	return response
}

func toParticipantResponse(p *models.Participation) dto.ParticipantResponse {
	resp := dto.ParticipantResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		Status:    string(p.Status),
		User:      toUserResponse(p.User),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Event != nil {
		resp.Event = &dto.EventSummaryResponse{ID: p.Event.ID, Title: p.Event.Title}
	}
	return resp
}

func toParticipantResponses(parts []models.Participation) []dto.ParticipantResponse {
	response := make([]dto.ParticipantResponse, len(parts))
	for i := range parts {
		response[i] = toParticipantResponse(&parts[i])
	}
	return response
}
