// Package dispatch carries notification facts from the request path to the
// notification service through a queue, so delivery never affects the
// outcome of the operation that produced them.
package dispatch

import (
	"encoding/json"
	"fmt"
	"time"
)

type Kind string

const (
	KindEventCreated   Kind = "event_created"
	KindInvitationSent Kind = "invitation_sent"
)

type Message struct {
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title,omitempty"`
	Creator    string    `json:"creator,omitempty"`
	Email      string    `json:"email,omitempty"`
	EventTitle string    `json:"eventTitle,omitempty"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

func (m Message) Validate() error {
	switch m.Kind {
	case KindEventCreated, KindInvitationSent:
		return nil
	}
	return fmt.Errorf("unknown message kind %q", m.Kind)
}

func encodeMessage(m Message) ([]byte, error) {
	return json.Marshal(m)
}

func decodeMessage(body []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(body, &m); err != nil {
		return Message{}, fmt.Errorf("failed to decode message: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}
