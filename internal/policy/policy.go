// Package policy decides who may act on events and participations.
//
// Every check is a pure function of the actor and the records involved. The
// rules that changed over the product's history (who may invite, who may edit)
// are selectable so deployments can pick the behavior they depend on.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type InviteRule int

const (
	InviteCreatorOnly InviteRule = iota
	InviteAnyAuthenticated
)

type ModifyRule int

const (
	ModifyCreatorOrParticipant ModifyRule = iota
	ModifyCreatorOnly
)

const (
	VariantDefault = "default"
	VariantStrict  = "strict"
	VariantLegacy  = "legacy"
)

type Policy struct {
	Name   string
	Invite InviteRule
	Modify ModifyRule
}

// Default allows only the creator to invite, and the creator or any participant to edit.
func Default() Policy {
	return Policy{Name: VariantDefault, Invite: InviteCreatorOnly, Modify: ModifyCreatorOrParticipant}
}

func Named(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", VariantDefault:
		return Default(), nil
	case VariantStrict:
		return Policy{Name: VariantStrict, Invite: InviteCreatorOnly, Modify: ModifyCreatorOnly}, nil
	case VariantLegacy:
		return Policy{Name: VariantLegacy, Invite: InviteAnyAuthenticated, Modify: ModifyCreatorOrParticipant}, nil
	}
	return Policy{}, fmt.Errorf("unknown policy variant %q", name)
}

// FromConfig resolves a named variant and applies the optional per-rule overrides
// ("creator" or "any" for invite, "creator" or "participant" for modify).
func FromConfig(variant, invite, modify string) (Policy, error) {
	p, err := Named(variant)
	if err != nil {
		return Policy{}, err
	}

	switch strings.ToLower(strings.TrimSpace(invite)) {
	case "":
	case "creator":
		p.Invite = InviteCreatorOnly
	case "any":
		p.Invite = InviteAnyAuthenticated
	default:
		return Policy{}, fmt.Errorf("unknown invite policy %q", invite)
	}

	switch strings.ToLower(strings.TrimSpace(modify)) {
	case "":
	case "creator":
		p.Modify = ModifyCreatorOnly
	case "participant":
		p.Modify = ModifyCreatorOrParticipant
	default:
		return Policy{}, fmt.Errorf("unknown modify policy %q", modify)
	}

	return p, nil
}

func (p Policy) CanCreateEvent(actor uuid.UUID) error {
	if actor == uuid.Nil {
		return ErrUnauthenticated
	}
	return nil
}

// CanModifyEvent accepts participations of any status.
func (p Policy) CanModifyEvent(actor uuid.UUID, event *models.Event, participations []models.Participation) error {
	if actor == uuid.Nil {
		return ErrUnauthenticated
	}
	if event.IsCreator(actor) {
		return nil
	}
	if p.Modify == ModifyCreatorOrParticipant {
		for _, part := range participations {
			if part.UserID == actor && part.EventID == event.ID {
				return nil
			}
		}
	}
	return ErrForbidden
}

func (p Policy) CanDeleteEvent(actor uuid.UUID, event *models.Event) error {
	if actor == uuid.Nil {
		return ErrUnauthenticated
	}
	if !event.IsCreator(actor) {
		return ErrForbidden
	}
	return nil
}

func (p Policy) CanInvite(actor uuid.UUID, event *models.Event) error {
	if actor == uuid.Nil {
		return ErrUnauthenticated
	}
	if p.Invite == InviteAnyAuthenticated || event.IsCreator(actor) {
		return nil
	}
	return ErrForbidden
}

func (p Policy) CanRemoveParticipant(actor uuid.UUID, event *models.Event, participation *models.Participation) error {
	if actor == uuid.Nil {
		return ErrUnauthenticated
	}
	if event.IsCreator(actor) || participation.UserID == actor {
		return nil
	}
	return ErrForbidden
}

func (p Policy) CanRespond(actor uuid.UUID, participation *models.Participation) error {
	if actor == uuid.Nil {
		return ErrUnauthenticated
	}
	if participation.UserID != actor {
		return ErrForbidden
	}
	return nil
}
