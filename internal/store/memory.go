package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/google/uuid"
)

// MemoryStore is an in-process Store. It enforces the same uniqueness rules as
// the Postgres schema and is used by tests and local runs without a database.
type MemoryStore struct {
	mu             sync.RWMutex
	users          map[uuid.UUID]models.User
	events         map[uuid.UUID]models.Event
	participations map[uuid.UUID]models.Participation
	now            func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[uuid.UUID]models.User),
		events:         make(map[uuid.UUID]models.Event),
		participations: make(map[uuid.UUID]models.Participation),
		now:            time.Now,
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, ErrConflict
		}
	}
	now := s.now()
	user := models.User{ID: uuid.New(), Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[event.CreatorID]; !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	event.ID = uuid.New()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.Creator = nil
	event.Participants = nil
	s.events[event.ID] = event

	out := s.withAssociations(event)
	return &out, nil
}

func (s *MemoryStore) FindEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.withAssociations(e)
	return &out, nil
}

func (s *MemoryStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.filterEvents(ctx, func(models.Event) bool { return true }, byStartAsc)
}

func (s *MemoryStore) ListEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return s.filterEvents(ctx, func(e models.Event) bool { return want[e.ID] }, byStartAsc)
}

func (s *MemoryStore) ListEventsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	return s.filterEvents(ctx, func(e models.Event) bool { return e.CreatorID == creatorID }, byStartAsc)
}

func (s *MemoryStore) ListEventsByCreatorOrParticipant(ctx context.Context, userID uuid.UUID, filter models.TimeFilter) ([]models.Event, error) {
	order := byStartAsc
	if filter.Window == models.WindowPast {
		order = byEndDesc
	}
	return s.filterEvents(ctx, func(e models.Event) bool {
		if !filter.Matches(&e) {
			return false
		}
		if e.CreatorID == userID {
			return true
		}
		return s.hasParticipation(e.ID, userID)
	}, order)
}

func (s *MemoryStore) UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = s.now()
	s.events[id] = e

	out := s.withAssociations(e)
	return &out, nil
}

func (s *MemoryStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	for pid, p := range s.participations {
		if p.EventID == id {
			delete(s.participations, pid)
		}
	}
	delete(s.events, id)
	return nil
}

func (s *MemoryStore) CreateParticipation(ctx context.Context, eventID, userID uuid.UUID, status models.ParticipationStatus) (*models.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return nil, ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return nil, ErrNotFound
	}
	if s.hasParticipation(eventID, userID) {
		return nil, ErrConflict
	}

	now := s.now()
	p := models.Participation{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.participations[p.ID] = p

	out := s.participationWithAssociations(p)
	return &out, nil
}

func (s *MemoryStore) FindParticipationByID(ctx context.Context, id uuid.UUID) (*models.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participations[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.participationWithAssociations(p)
	return &out, nil
}

func (s *MemoryStore) FindParticipationByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*models.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.participations {
		if p.EventID == eventID && p.UserID == userID {
			out := s.participationWithAssociations(p)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateParticipationStatus(ctx context.Context, id uuid.UUID, status models.ParticipationStatus) (*models.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participations[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = s.now()
	s.participations[id] = p

	out := s.participationWithAssociations(p)
	return &out, nil
}

func (s *MemoryStore) DeleteParticipation(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participations[id]; !ok {
		return ErrNotFound
	}
	delete(s.participations, id)
	return nil
}

func (s *MemoryStore) ListParticipationsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error) {
	return s.filterParticipations(ctx, func(p models.Participation) bool { return p.EventID == eventID })
}

func (s *MemoryStore) ListParticipationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Participation, error) {
	return s.filterParticipations(ctx, func(p models.Participation) bool { return p.UserID == userID })
}

func (s *MemoryStore) filterEvents(ctx context.Context, keep func(models.Event) bool, less func(a, b models.Event) bool) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0)
	for _, e := range s.events {
		if keep(e) {
			events = append(events, s.withAssociations(e))
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return less(events[i], events[j]) })
	return events, nil
}

func (s *MemoryStore) filterParticipations(ctx context.Context, keep func(models.Participation) bool) ([]models.Participation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	parts := make([]models.Participation, 0)
	for _, p := range s.participations {
		if keep(p) {
			parts = append(parts, s.participationWithAssociations(p))
		}
	}
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].CreatedAt.Before(parts[j].CreatedAt) })
	return parts, nil
}

// callers hold s.mu
func (s *MemoryStore) hasParticipation(eventID, userID uuid.UUID) bool {
	for _, p := range s.participations {
		if p.EventID == eventID && p.UserID == userID {
			return true
		}
	}
	return false
}

// callers hold s.mu
func (s *MemoryStore) withAssociations(e models.Event) models.Event {
	if u, ok := s.users[e.CreatorID]; ok {
		e.Creator = &u
	}
	e.Participants = make([]models.Participation, 0)
	for _, p := range s.participations {
		if p.EventID == e.ID {
			if u, ok := s.users[p.UserID]; ok {
				p.User = &u
			}
			e.Participants = append(e.Participants, p)
		}
	}
	sort.SliceStable(e.Participants, func(i, j int) bool {
		return e.Participants[i].CreatedAt.Before(e.Participants[j].CreatedAt)
	})
	return e
}

// callers hold s.mu
func (s *MemoryStore) participationWithAssociations(p models.Participation) models.Participation {
	if u, ok := s.users[p.UserID]; ok {
		p.User = &u
	}
	if e, ok := s.events[p.EventID]; ok {
		p.Event = &models.EventSummary{ID: e.ID, Title: e.Title}
	}
	return p
}

func byStartAsc(a, b models.Event) bool {
	return a.StartTime.Before(b.StartTime)
}

func byEndDesc(a, b models.Event) bool {
	return a.EndTime.After(b.EndTime)
}
