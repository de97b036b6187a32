package testutil

import (
	"context"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventService mocks the EventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, actor uuid.UUID, input services.CreateEventInput) (*models.Event, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) List(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventService) ListForUser(ctx context.Context, email string) (*models.UserEvents, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserEvents), args.Error(1)
}

func (m *MockEventService) Upcoming(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventService) Past(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, actor, eventID uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	args := m.Called(ctx, actor, eventID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, actor, eventID uuid.UUID) error {
	args := m.Called(ctx, actor, eventID)
	return args.Error(0)
}

// MockParticipationService mocks the ParticipationService
type MockParticipationService struct {
	mock.Mock
}

func (m *MockParticipationService) Invite(ctx context.Context, actor, eventID uuid.UUID, email string) (*models.Participation, error) {
	args := m.Called(ctx, actor, eventID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participation), args.Error(1)
}

func (m *MockParticipationService) List(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participation), args.Error(1)
}

func (m *MockParticipationService) Respond(ctx context.Context, actor, eventID uuid.UUID, status models.ParticipationStatus) (*models.Participation, error) {
	args := m.Called(ctx, actor, eventID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participation), args.Error(1)
}

func (m *MockParticipationService) Remove(ctx context.Context, actor, eventID, participationID uuid.UUID) error {
	args := m.Called(ctx, actor, eventID, participationID)
	return args.Error(0)
}

func (m *MockParticipationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Participation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participation), args.Error(1)
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
