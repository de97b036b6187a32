package handlers

import (
	"context"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/google/uuid"
)

// EventServiceInterface defines the methods used by handlers from EventService
type EventServiceInterface interface {
	Create(ctx context.Context, actor uuid.UUID, input services.CreateEventInput) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	ListForUser(ctx context.Context, email string) (*models.UserEvents, error)
	Upcoming(ctx context.Context, userID uuid.UUID) ([]models.Event, error)
	Past(ctx context.Context, userID uuid.UUID) ([]models.Event, error)
	Update(ctx context.Context, actor, eventID uuid.UUID, patch models.EventPatch) (*models.Event, error)
	Delete(ctx context.Context, actor, eventID uuid.UUID) error
}

// ParticipationServiceInterface defines the methods used by handlers from ParticipationService
type ParticipationServiceInterface interface {
	Invite(ctx context.Context, actor, eventID uuid.UUID, email string) (*models.Participation, error)
	List(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error)
	Respond(ctx context.Context, actor, eventID uuid.UUID, status models.ParticipationStatus) (*models.Participation, error)
	Remove(ctx context.Context, actor, eventID, participationID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Participation, error)
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
