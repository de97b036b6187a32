package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/dimitrije/amazing-calendar/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRouter_HandlerBuilds(t *testing.T) {
	assert.NotPanics(t, func() {
		Router{
			Events:       &EventHandler{},
			Participants: &ParticipantHandler{},
			Users:        &UserHandler{},
			Tokens:       testutil.TestJWTService(),
		}.Handler()
	})
}

// Every service call fails with ErrForbidden, so a 403 proves the request
// reached its handler rather than falling through to 404/405.
func TestRouter_EveryRouteReachesItsHandler(t *testing.T) {
	env := setupTestEnv(t)
	args2, args3, args4 := []any{mock.Anything, mock.Anything}, []any{mock.Anything, mock.Anything, mock.Anything},
		[]any{mock.Anything, mock.Anything, mock.Anything, mock.Anything}

	env.events.On("List", mock.Anything).Return(nil, services.ErrForbidden)
	env.events.On("Create", args3...).Return(nil, services.ErrForbidden)
	env.events.On("ListForUser", args2...).Return(nil, services.ErrForbidden)
	env.events.On("Upcoming", args2...).Return(nil, services.ErrForbidden)
	env.events.On("Past", args2...).Return(nil, services.ErrForbidden)
	env.events.On("Update", args4...).Return(nil, services.ErrForbidden)
	env.events.On("Delete", args3...).Return(services.ErrForbidden)
	env.participation.On("Invite", args4...).Return(nil, services.ErrForbidden)
	env.participation.On("List", args2...).Return(nil, services.ErrForbidden)
	env.participation.On("Respond", args4...).Return(nil, services.ErrForbidden)
	env.participation.On("Remove", args4...).Return(services.ErrForbidden)
	env.participation.On("ListForUser", args2...).Return(nil, services.ErrForbidden)
	env.users.On("GetByID", args2...).Return(nil, services.ErrForbidden)

	eventPath := "/api/events/" + uuid.New().String()
	testCases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/events", nil},
		{http.MethodPost, "/api/events", map[string]any{"title": "Standup"}},
		{http.MethodGet, "/api/users/events?email=bob@example.com", nil},
		{http.MethodGet, "/api/me/events/upcoming", nil},
		{http.MethodGet, "/api/me/events/past", nil},
		{http.MethodPut, eventPath, map[string]any{"title": "x"}},
		{http.MethodPatch, eventPath, map[string]any{"title": "x"}},
		{http.MethodDelete, eventPath, nil},
		{http.MethodPost, eventPath + "/invite", map[string]any{"email": "bob@example.com"}},
		{http.MethodGet, eventPath + "/participants", nil},
		{http.MethodPost, eventPath + "/respond", map[string]any{"status": "ACCEPTED"}},
		{http.MethodDelete, eventPath + "/participants/" + uuid.New().String(), nil},
		{http.MethodGet, "/api/users/me", nil},
		{http.MethodGet, "/api/invitations", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := env.client.Request(tc.method, tc.path, tc.body, env.auth)

			assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
		})
	}
}
