package handlers

import (
	"testing"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/logger"
	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/testutil"
	"github.com/google/uuid"
)

type testEnv struct {
	events        *testutil.MockEventService
	participation *testutil.MockParticipationService
	users         *testutil.MockUserService
	client        *testutil.HTTPTestClient
	userID        uuid.UUID
	auth          map[string]string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		events:        new(testutil.MockEventService),
		participation: new(testutil.MockParticipationService),
		users:         new(testutil.MockUserService),
		userID:        uuid.New(),
	}
	log := logger.Discard()
	router := Router{
		Events:       NewEventHandler(env.events, log),
		Participants: NewParticipantHandler(env.participation, log),
		Users:        NewUserHandler(env.users, log),
		Tokens:       testutil.TestJWTService(),
	}
	env.client = testutil.NewHTTPTestClient(t, router.Handler())
	env.auth = testutil.AuthHeader(testutil.GenerateTestToken(t, env.userID, "alice@example.com"))
	return env
}

func (env *testEnv) assertExpectations(t *testing.T) {
	env.events.AssertExpectations(t)
	env.participation.AssertExpectations(t)
	env.users.AssertExpectations(t)
}

func sampleEvent(creatorID uuid.UUID) *models.Event {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.Event{
		ID:           uuid.New(),
		Title:        "Standup",
		StartTime:    start,
		EndTime:      start.Add(15 * time.Minute),
		CreatorID:    creatorID,
		Creator:      &models.User{ID: creatorID, Email: "alice@example.com", Name: "Alice"},
		Participants: []models.Participation{},
	}
}
