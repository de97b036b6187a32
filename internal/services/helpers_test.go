package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/logger"
	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/policy"
	"github.com/dimitrije/amazing-calendar/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyEventCreated(ctx context.Context, title, creator string) {
	m.Called(ctx, title, creator)
}

func (m *mockNotifier) NotifyInvitation(ctx context.Context, email, eventTitle string) {
	m.Called(ctx, email, eventTitle)
}

type fixture struct {
	store         *store.MemoryStore
	notifier      *mockNotifier
	events        *EventService
	participation *ParticipationService
	alice         *models.User
	bob           *models.User
	carol         *models.User
	now           time.Time
}

func setupFixture(t *testing.T, p policy.Policy) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	n := &mockNotifier{}
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	alice, err := st.CreateUser(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := st.CreateUser(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)
	carol, err := st.CreateUser(ctx, "Carol", "carol@example.com")
	require.NoError(t, err)

	return &fixture{
		store:         st,
		notifier:      n,
		events:        NewEventService(st, p, n, logger.Discard()).WithClock(func() time.Time { return now }),
		participation: NewParticipationService(st, p, n, logger.Discard()),
		alice:         alice,
		bob:           bob,
		carol:         carol,
		now:           now,
	}
}

// createEvent stores an event for creator without going through the engine.
func (f *fixture) createEvent(t *testing.T, creator *models.User, title string, start, end time.Time) *models.Event {
	t.Helper()
	e, err := f.store.CreateEvent(context.Background(), models.Event{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		CreatorID: creator.ID,
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) invite(t *testing.T, e *models.Event, u *models.User) *models.Participation {
	t.Helper()
	p, err := f.store.CreateParticipation(context.Background(), e.ID, u.ID, models.StatusInvited)
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T {
	return &v
}
