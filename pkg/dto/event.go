package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location,omitempty"`
}

// UpdateEventRequest is a partial patch. Omitted fields keep their value.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

type EventResponse struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Description  *string               `json:"description,omitempty"`
	StartTime    time.Time             `json:"start_time"`
	EndTime      time.Time             `json:"end_time"`
	Location     *string               `json:"location,omitempty"`
	CreatorID    uuid.UUID             `json:"creator_id"`
	Creator      *UserResponse         `json:"creator,omitempty"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type EventSummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type InvitedEventResponse struct {
	Status string        `json:"status"`
	Event  EventResponse `json:"event"`
}

type UserEventsResponse struct {
	User    UserResponse           `json:"user"`
	Created []EventResponse        `json:"created"`
	Invited []InvitedEventResponse `json:"invited"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
