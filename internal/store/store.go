// Package store persists users, events and participations.
package store

import (
	"context"
	"errors"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record conflict")
)

// Store is the repository consumed by the event and participation engines.
//
// Event reads return the creator and participants (with their users) attached.
// Participation reads return the user and an event summary attached.
type Store interface {
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	FindEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error)
	ListEventsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error)
	ListEventsByCreatorOrParticipant(ctx context.Context, userID uuid.UUID, filter models.TimeFilter) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*models.Event, error)
	// DeleteEvent removes the event's participations and then the event, atomically.
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	CreateParticipation(ctx context.Context, eventID, userID uuid.UUID, status models.ParticipationStatus) (*models.Participation, error)
	FindParticipationByID(ctx context.Context, id uuid.UUID) (*models.Participation, error)
	FindParticipationByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*models.Participation, error)
	UpdateParticipationStatus(ctx context.Context, id uuid.UUID, status models.ParticipationStatus) (*models.Participation, error)
	DeleteParticipation(ctx context.Context, id uuid.UUID) error
	ListParticipationsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error)
	ListParticipationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Participation, error)
}
