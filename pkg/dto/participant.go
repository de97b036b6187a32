package dto

import (
	"time"

	"github.com/google/uuid"
)

type InviteRequest struct {
	Email string `json:"email"`
}

type RespondRequest struct {
	Status string `json:"status"`
}

type ParticipantResponse struct {
	ID        uuid.UUID             `json:"id"`
	EventID   uuid.UUID             `json:"event_id"`
	UserID    uuid.UUID             `json:"user_id"`
	Status    string                `json:"status"`
	User      *UserResponse         `json:"user,omitempty"`
	Event     *EventSummaryResponse `json:"event,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}
