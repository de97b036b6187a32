package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/policy"
	"github.com/dimitrije/amazing-calendar/internal/store"
	"github.com/google/uuid"
)

type ParticipationService struct {
	store    store.Store
	policy   policy.Policy
	notifier Notifier
	logger   *slog.Logger
}

func NewParticipationService(st store.Store, p policy.Policy, notifier Notifier, logger *slog.Logger) *ParticipationService {
	return &ParticipationService{
		store:    st,
		policy:   p,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *ParticipationService) Invite(ctx context.Context, actor, eventID uuid.UUID, email string) (*models.Participation, error) {
	event, err := s.store.FindEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if err := s.policy.CanInvite(actor, event); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrUserNotFound
	}
	invitee, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if event.IsCreator(invitee.ID) {
		return nil, ErrCannotInviteCreator
	}

	_, err = s.store.FindParticipationByEventAndUser(ctx, eventID, invitee.ID)
	if err == nil {
		return nil, ErrAlreadyInvited
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}

	participation, err := s.store.CreateParticipation(ctx, eventID, invitee.ID, models.StatusInvited)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return nil, ErrAlreadyInvited
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}

	s.logger.Info("participant invited", "event_id", eventID, "user_id", invitee.ID)
	s.notifier.NotifyInvitation(ctx, invitee.Email, event.Title)

	return participation, nil
}

func (s *ParticipationService) List(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error) {
	if _, err := s.store.FindEventByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	parts, err := s.store.ListParticipationsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return parts, nil
}

// Respond records the actor's answer to their own invitation. The row is looked
// up by (event, actor), so another user's invitation is reported as not found.
// Repeating the same answer succeeds.
func (s *ParticipationService) Respond(ctx context.Context, actor, eventID uuid.UUID, status models.ParticipationStatus) (*models.Participation, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if !status.IsResponse() {
		return nil, ErrInvalidStatus
	}

	participation, err := s.store.FindParticipationByEventAndUser(ctx, eventID, actor)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	if err := s.policy.CanRespond(actor, participation); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateParticipationStatus(ctx, participation.ID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, fmt.Errorf("failed to update participation: %w", err)
	}
	return updated, nil
}

func (s *ParticipationService) Remove(ctx context.Context, actor, eventID, participationID uuid.UUID) error {
	participation, err := s.store.FindParticipationByID(ctx, participationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrParticipationNotFound
		}
		return fmt.Errorf("failed to get participation: %w", err)
	}
	if participation.EventID != eventID {
		return ErrParticipationNotFound
	}

	event, err := s.store.FindEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}
	if err := s.policy.CanRemoveParticipant(actor, event, participation); err != nil {
		return err
	}

	if err := s.store.DeleteParticipation(ctx, participationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrParticipationNotFound
		}
		return fmt.Errorf("failed to delete participation: %w", err)
	}

	s.logger.Info("participant removed", "event_id", eventID, "participation_id", participationID, "actor_id", actor)
	return nil
}

// ListForUser returns the actor's own participations with event summaries.
func (s *ParticipationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Participation, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	parts, err := s.store.ListParticipationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return parts, nil
}
