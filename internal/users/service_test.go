package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/people-finder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	passwords, err := config.NewPasswordConfigWithCost(config.MinBcryptCost, "")
	require.NoError(t, err)
	store := NewMemoryStore()
	return NewService(store, passwords), store
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, &CreateRequest{Name: "  Ada Lovelace ", Email: " ADA@Example.com ", Password: "correct-horse"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	rec := store.records[user.ID]
	assert.NotEmpty(t, rec.PasswordHash)
	assert.NotEqual(t, "correct-horse", rec.PasswordHash)
	assert.True(t, svc.passwords.VerifyPassword("correct-horse", rec.PasswordHash))
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name  string
		req   CreateRequest
		field string
	}{
		{"missing name", CreateRequest{Name: "  ", Email: "a@b.co", Password: "longenough"}, "name"},
		{"bad email", CreateRequest{Name: "A", Email: "not-an-email", Password: "longenough"}, "email"},
		{"missing email", CreateRequest{Name: "A", Password: "longenough"}, "email"},
		{"short password", CreateRequest{Name: "A", Email: "a@b.co", Password: "short"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			var vErr *ErrValidation
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestService_CreateDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateRequest{Name: "A", Email: "dup@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateRequest{Name: "B", Email: "DUP@example.com", Password: "longenough"})
	var dupErr *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dup@example.com", dupErr.Email)
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateRequest{Name: "A", Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	base := created.UpdatedAt
	svc.now = func() time.Time { return base.Add(time.Minute) }

	updated, err := svc.Update(ctx, created.ID, &UpdateRequest{Name: strPtr("Alice"), Avatar: strPtr("https://img.test/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "a@example.com", updated.Email)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "https://img.test/a.png", *updated.Avatar)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, base.Add(time.Minute), updated.UpdatedAt)

	cleared, err := svc.Update(ctx, created.ID, &UpdateRequest{Avatar: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Avatar)
	assert.Equal(t, "Alice", cleared.Name)
}

func TestService_UpdateErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, &CreateRequest{Name: "A", Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateRequest{Name: "B", Email: "b@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, &UpdateRequest{Email: strPtr("B@example.com")})
	var dupErr *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &dupErr)

	_, err = svc.Update(ctx, a.ID, &UpdateRequest{Email: strPtr("nope")})
	var vErr *ErrValidation
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Update(ctx, a.ID, &UpdateRequest{Avatar: strPtr("not a url")})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Update(ctx, uuid.New(), &UpdateRequest{Name: strPtr("X")})
	var nfErr *ErrUserNotFound
	assert.ErrorAs(t, err, &nfErr)

	// Keeping one's own email is not a conflict.
	_, err = svc.Update(ctx, a.ID, &UpdateRequest{Email: strPtr("A@example.com")})
	assert.NoError(t, err)
}

func TestService_ListGetDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	first, err := svc.Create(ctx, &CreateRequest{Name: "First", Email: "1@example.com", Password: "longenough"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &CreateRequest{Name: "Second", Email: "2@example.com", Password: "longenough"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	got, err := svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)

	require.NoError(t, svc.Delete(ctx, first.ID))
	var nfErr *ErrUserNotFound
	assert.ErrorAs(t, svc.Delete(ctx, first.ID), &nfErr)
	_, err = svc.Get(ctx, first.ID)
	assert.ErrorAs(t, err, &nfErr)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("123")
	var vErr *ErrValidation
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "id", vErr.Field)
}
