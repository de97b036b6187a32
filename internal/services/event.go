package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/policy"
	"github.com/dimitrije/amazing-calendar/internal/store"
	"github.com/google/uuid"
)

// Notifier receives the facts the engines announce after a committed mutation.
// Implementations must not block and must not report failures back.
type Notifier interface {
	NotifyEventCreated(ctx context.Context, title, creator string)
	NotifyInvitation(ctx context.Context, email, eventTitle string)
}

type CreateEventInput struct {
	Title       string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
}

type EventService struct {
	store    store.Store
	policy   policy.Policy
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewEventService(st store.Store, p policy.Policy, notifier Notifier, logger *slog.Logger) *EventService {
	return &EventService{
		store:    st,
		policy:   p,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for the upcoming and past windows.
func (s *EventService) WithClock(now func() time.Time) *EventService {
	s.now = now
	return s
}

func (s *EventService) Create(ctx context.Context, actor uuid.UUID, input CreateEventInput) (*models.Event, error) {
	if err := s.policy.CanCreateEvent(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" || input.StartTime == nil || input.EndTime == nil {
		return nil, ErrMissingFields
	}

	creator, err := s.store.FindUserByID(ctx, actor)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to resolve creator: %w", err)
	}

	event, err := s.store.CreateEvent(ctx, models.Event{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   *input.StartTime,
		EndTime:     *input.EndTime,
		Location:    input.Location,
		CreatorID:   creator.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("event created", "event_id", event.ID, "creator_id", creator.ID)
	s.notifier.NotifyEventCreated(ctx, event.Title, creator.DisplayIdentifier())

	return event, nil
}

// List returns every event. It is intentionally not scoped to the caller.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) ListForUser(ctx context.Context, email string) (*models.UserEvents, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	created, err := s.store.ListEventsByCreator(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created events: %w", err)
	}

	parts, err := s.store.ListParticipationsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}

	ids := make([]uuid.UUID, len(parts))
	for i, p := range parts {
		ids[i] = p.EventID
	}
	events, err := s.store.ListEventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list invited events: %w", err)
	}
	byID := make(map[uuid.UUID]*models.Event, len(events))
	for i := range events {
		byID[events[i].ID] = &events[i]
	}

	invited := make([]models.InvitedEvent, 0, len(parts))
	for _, p := range parts {
		if e, ok := byID[p.EventID]; ok {
			invited = append(invited, models.InvitedEvent{Status: p.Status, Event: e})
		}
	}

	return &models.UserEvents{User: user, Created: created, Invited: invited}, nil
}

func (s *EventService) Upcoming(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	return s.window(ctx, userID, models.WindowUpcoming)
}

func (s *EventService) Past(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	return s.window(ctx, userID, models.WindowPast)
}

func (s *EventService) window(ctx context.Context, userID uuid.UUID, w models.TimeWindow) ([]models.Event, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	events, err := s.store.ListEventsByCreatorOrParticipant(ctx, userID, models.TimeFilter{Window: w, Now: s.now()})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) Update(ctx context.Context, actor, eventID uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyEvent(actor, event, event.Participants); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, ErrNoUpdates
	}

	updated, err := s.store.UpdateEvent(ctx, eventID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, actor, eventID uuid.UUID) error {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.policy.CanDeleteEvent(actor, event); err != nil {
		return err
	}

	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.logger.Info("event deleted", "event_id", eventID, "actor_id", actor)
	return nil
}

func (s *EventService) findEvent(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	event, err := s.store.FindEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}
