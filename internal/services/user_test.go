package services

import (
	"context"
	"testing"

	"github.com/dimitrije/amazing-calendar/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())

	user, err := svc.Create(context.Background(), " Alice ", "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())
	_, err := svc.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Other", "alice@example.com")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_Create_MissingFields(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())

	_, err := svc.Create(context.Background(), "", "alice@example.com")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserService_GetByID(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())
	created, err := svc.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	user, err := svc.GetByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetByEmail(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())
	created, err := svc.Create(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)

	user, err := svc.GetByEmail(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestUserService_GetByEmail_NotFound(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())

	_, err := svc.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
