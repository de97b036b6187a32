package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/amazing-calendar/internal/database"
	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const eventColumns = `e.id, e.title, e.description, e.start_time, e.end_time, e.location, e.creator_id, e.created_at, e.updated_at,
		       u.id, u.email, u.name, u.created_at, u.updated_at`

const participationColumns = `p.id, p.event_id, p.user_id, p.status, p.created_at, p.updated_at,
		       u.id, u.email, u.name, u.created_at, u.updated_at,
		       e.id, e.title`

type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, email, name, created_at, updated_at
	`, name, email).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, name, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "failed to get user")
	}
	return &user, nil
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, name, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "failed to get user by email")
	}
	return &user, nil
}

func (s *PostgresStore) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO events (title, description, start_time, end_time, location, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, event.Title, event.Description, event.StartTime, event.EndTime, event.Location, event.CreatorID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return s.FindEventByID(ctx, id)
}

func (s *PostgresStore) FindEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN users u ON e.creator_id = u.id
		WHERE e.id = $1
	`, id)
	event, err := scanEvent(row)
	if err != nil {
		return nil, notFound(err, "failed to get event")
	}

	events := []models.Event{*event}
	if err := s.attachParticipants(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

func (s *PostgresStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN users u ON e.creator_id = u.id
		ORDER BY e.start_time ASC
	`)
}

func (s *PostgresStore) ListEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN users u ON e.creator_id = u.id
		WHERE e.id = ANY($1)
		ORDER BY e.start_time ASC
	`, ids)
}

func (s *PostgresStore) ListEventsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN users u ON e.creator_id = u.id
		WHERE e.creator_id = $1
		ORDER BY e.start_time ASC
	`, creatorID)
}

func (s *PostgresStore) ListEventsByCreatorOrParticipant(ctx context.Context, userID uuid.UUID, filter models.TimeFilter) ([]models.Event, error) {
	var window string
	switch filter.Window {
	case models.WindowUpcoming:
		window = `e.start_time >= $2
		ORDER BY e.start_time ASC`
	case models.WindowPast:
		window = `e.end_time < $2
		ORDER BY e.end_time DESC`
	default:
		return nil, fmt.Errorf("unknown time window %d", filter.Window)
	}

	return s.queryEvents(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN users u ON e.creator_id = u.id
		WHERE (e.creator_id = $1 OR EXISTS (
			SELECT 1 FROM event_participants ep WHERE ep.event_id = e.id AND ep.user_id = $1
		))
		AND `+window, userID, filter.Now)
}

func (s *PostgresStore) UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.StartTime != nil {
		add("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		add("end_time", *patch.EndTime)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if len(sets) == 0 {
		return s.FindEventByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	result, err := s.db.Pool.Exec(ctx,
		fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.FindEventByID(ctx, id)
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM event_participants WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateParticipation(ctx context.Context, eventID, userID uuid.UUID, status models.ParticipationStatus) (*models.Participation, error) {
	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO event_participants (event_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, eventID, userID, string(status)).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}
	return s.FindParticipationByID(ctx, id)
}

func (s *PostgresStore) FindParticipationByID(ctx context.Context, id uuid.UUID) (*models.Participation, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+participationColumns+`
		FROM event_participants p
		JOIN users u ON p.user_id = u.id
		JOIN events e ON p.event_id = e.id
		WHERE p.id = $1
	`, id)
	p, err := scanParticipation(row)
	if err != nil {
		return nil, notFound(err, "failed to get participation")
	}
	return p, nil
}

func (s *PostgresStore) FindParticipationByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*models.Participation, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+participationColumns+`
		FROM event_participants p
		JOIN users u ON p.user_id = u.id
		JOIN events e ON p.event_id = e.id
		WHERE p.event_id = $1 AND p.user_id = $2
	`, eventID, userID)
	p, err := scanParticipation(row)
	if err != nil {
		return nil, notFound(err, "failed to get participation")
	}
	return p, nil
}

func (s *PostgresStore) UpdateParticipationStatus(ctx context.Context, id uuid.UUID, status models.ParticipationStatus) (*models.Participation, error) {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE event_participants SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update participation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.FindParticipationByID(ctx, id)
}

func (s *PostgresStore) DeleteParticipation(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM event_participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListParticipationsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error) {
	return s.queryParticipations(ctx, `
		SELECT `+participationColumns+`
		FROM event_participants p
		JOIN users u ON p.user_id = u.id
		JOIN events e ON p.event_id = e.id
		WHERE p.event_id = $1
		ORDER BY p.created_at
	`, eventID)
}

func (s *PostgresStore) ListParticipationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Participation, error) {
	return s.queryParticipations(ctx, `
		SELECT `+participationColumns+`
		FROM event_participants p
		JOIN users u ON p.user_id = u.id
		JOIN events e ON p.event_id = e.id
		WHERE p.user_id = $1
		ORDER BY p.created_at
	`, userID)
}

func (s *PostgresStore) queryEvents(ctx context.Context, sql string, args ...any) ([]models.Event, error) {
	rows, err := s.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	rows.Close()

	if err := s.attachParticipants(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// attachParticipants loads the participants of all given events in one query.
func (s *PostgresStore) attachParticipants(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(events))
	index := make(map[uuid.UUID]int, len(events))
	for i := range events {
		ids[i] = events[i].ID
		index[events[i].ID] = i
		events[i].Participants = make([]models.Participation, 0)
	}

	parts, err := s.queryParticipations(ctx, `
		SELECT `+participationColumns+`
		FROM event_participants p
		JOIN users u ON p.user_id = u.id
		JOIN events e ON p.event_id = e.id
		WHERE p.event_id = ANY($1)
		ORDER BY p.created_at
	`, ids)
	if err != nil {
		return err
	}

	for _, p := range parts {
		if i, ok := index[p.EventID]; ok {
			p.Event = nil
			events[i].Participants = append(events[i].Participants, p)
		}
	}
	return nil
}

func (s *PostgresStore) queryParticipations(ctx context.Context, sql string, args ...any) ([]models.Participation, error) {
	rows, err := s.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	defer rows.Close()

	parts := make([]models.Participation, 0)
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participation: %w", err)
		}
		parts = append(parts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return parts, nil
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	var creator models.User
	if err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.StartTime, &event.EndTime,
		&event.Location, &event.CreatorID, &event.CreatedAt, &event.UpdatedAt,
		&creator.ID, &creator.Email, &creator.Name, &creator.CreatedAt, &creator.UpdatedAt,
	); err != nil {
		return nil, err
	}
	event.Creator = &creator
	event.Participants = make([]models.Participation, 0)
	return &event, nil
}

func scanParticipation(row pgx.Row) (*models.Participation, error) {
	var p models.Participation
	var status string
	var user models.User
	var summary models.EventSummary
	if err := row.Scan(
		&p.ID, &p.EventID, &p.UserID, &status, &p.CreatedAt, &p.UpdatedAt,
		&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt,
		&summary.ID, &summary.Title,
	); err != nil {
		return nil, err
	}
	p.Status = models.ParticipationStatus(status)
	p.User = &user
	p.Event = &summary
	return &p, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
