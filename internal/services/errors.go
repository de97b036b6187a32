package services

import (
	"errors"
	"fmt"

	"github.com/dimitrije/amazing-calendar/internal/policy"
)

// Error kinds. Handlers map these to status codes with errors.Is.
var (
	ErrUnauthenticated = policy.ErrUnauthenticated
	ErrForbidden       = policy.ErrForbidden
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
)

var (
	ErrEventNotFound         = fmt.Errorf("event %w", ErrNotFound)
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrParticipationNotFound = fmt.Errorf("participation %w", ErrNotFound)
	ErrCreatorNotFound       = fmt.Errorf("creator %w", ErrNotFound)

	ErrAlreadyInvited = fmt.Errorf("user already invited: %w", ErrConflict)

	ErrMissingFields       = fmt.Errorf("title, start_time and end_time are required: %w", ErrInvalidInput)
	ErrNoUpdates           = fmt.Errorf("no fields to update: %w", ErrInvalidInput)
	ErrInvalidStatus       = fmt.Errorf("status must be ACCEPTED or DECLINED: %w", ErrInvalidInput)
	ErrCannotInviteCreator = fmt.Errorf("cannot invite the event creator: %w", ErrInvalidInput)
	ErrInvalidTimeRange    = fmt.Errorf("start_time must be before end_time: %w", ErrInvalidInput)
)
