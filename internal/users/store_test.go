package users

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	rec := Record{User: User{ID: uuid.New(), Name: "A", Email: "a@example.com", CreatedAt: now, UpdatedAt: now}, PasswordHash: "h"}
	created, err := store.Create(ctx, rec)
	require.NoError(t, err)

	created.Name = "mutated"
	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, Record{User: User{ID: uuid.New(), Email: "same@example.com"}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		var dupErr *ErrEmailAlreadyExists
		require.ErrorAs(t, err, &dupErr)
		dup++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, dup)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	_, err := NewMemoryStore().Update(context.Background(), uuid.New(), Patch{})
	var nfErr *ErrUserNotFound
	assert.ErrorAs(t, err, &nfErr)
}
