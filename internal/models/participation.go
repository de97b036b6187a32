package models

import (
	"time"

	"github.com/google/uuid"
)

type ParticipationStatus string

const (
	StatusInvited  ParticipationStatus = "INVITED"
	StatusAccepted ParticipationStatus = "ACCEPTED"
	StatusDeclined ParticipationStatus = "DECLINED"
)

// IsResponse reports whether s is a value an invitee may answer with.
func (s ParticipationStatus) IsResponse() bool {
	return s == StatusAccepted || s == StatusDeclined
}

type Participation struct {
	ID        uuid.UUID           `json:"id"`
	EventID   uuid.UUID           `json:"event_id"`
	UserID    uuid.UUID           `json:"user_id"`
	Status    ParticipationStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	User      *User               `json:"user,omitempty"`
	Event     *EventSummary       `json:"event,omitempty"`
}

type EventSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// InvitedEvent pairs an event with the viewer's own participation status.
type InvitedEvent struct {
	Status ParticipationStatus `json:"status"`
	Event  *Event              `json:"event"`
}

type UserEvents struct {
	User    *User          `json:"user"`
	Created []Event        `json:"created"`
	Invited []InvitedEvent `json:"invited"`
}
