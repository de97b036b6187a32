package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/database"
	"github.com/dimitrije/amazing-calendar/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		RETURNING id, email, name, created_at, updated_at
	`, user.Email, user.Name).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// CreateEvent inserts an event owned by creator starting an hour from now.
func (f *Fixtures) CreateEvent(t *testing.T, creator *models.User, opts ...EventOption) *models.Event {
	t.Helper()
	f.counter++

	start := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)
	event := &models.Event{
		Title:     fmt.Sprintf("Test Event %d", f.counter),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		CreatorID: creator.ID,
	}

	for _, opt := range opts {
		opt(event)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO events (title, description, start_time, end_time, location, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, event.Title, event.Description, event.StartTime, event.EndTime, event.Location, event.CreatorID).
		Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	return event
}

// EventOption configures a test event
type EventOption func(*models.Event)

func WithTitle(title string) EventOption {
	return func(e *models.Event) {
		e.Title = title
	}
}

// WithWindow sets the event's start and end.
func WithWindow(start, end time.Time) EventOption {
	return func(e *models.Event) {
		e.StartTime = start
		e.EndTime = end
	}
}

// AddParticipant inserts a participation row with the given status.
func (f *Fixtures) AddParticipant(t *testing.T, event *models.Event, user *models.User, status models.ParticipationStatus) *models.Participation {
	t.Helper()

	p := &models.Participation{EventID: event.ID, UserID: user.ID, Status: status}
	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO event_participants (event_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, p.EventID, p.UserID, string(p.Status)).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to add participant: %v", err)
	}

	return p
}
