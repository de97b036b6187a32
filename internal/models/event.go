package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Location     *string         `json:"location,omitempty"`
	CreatorID    uuid.UUID       `json:"creator_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Creator      *User           `json:"creator,omitempty"`
	Participants []Participation `json:"participants"`
}

func (e *Event) IsCreator(userID uuid.UUID) bool {
	return e.CreatorID == userID
}

// EventPatch carries the fields of a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
}

func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.StartTime == nil && p.EndTime == nil && p.Location == nil
}

// Apply overwrites the supplied fields on e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = p.Description
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Location != nil {
		e.Location = p.Location
	}
}

// TimeWindow selects events relative to a fixed instant.
type TimeWindow int

const (
	// WindowUpcoming matches events with start_time >= Now.
	WindowUpcoming TimeWindow = iota
	// WindowPast matches events with end_time < Now.
	WindowPast
)

type TimeFilter struct {
	Window TimeWindow
	Now    time.Time
}

func (f TimeFilter) Matches(e *Event) bool {
	switch f.Window {
	case WindowUpcoming:
		return !e.StartTime.Before(f.Now)
	case WindowPast:
		return e.EndTime.Before(f.Now)
	}
	return false
}
