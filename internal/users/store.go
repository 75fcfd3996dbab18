package users

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store persists user records. Implementations return *ErrUserNotFound and
// *ErrEmailAlreadyExists for the corresponding conditions.
type Store interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, rec Record) (*User, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryStore keeps users in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

// List returns all users ordered by creation time.
func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.User)
	}
	slices.SortFunc(out, func(a, b User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, &ErrUserNotFound{UserID: id}
	}
	u := rec.User
	return &u, nil
}

func (s *MemoryStore) Create(_ context.Context, rec Record) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(rec.Email, uuid.Nil) {
		return nil, &ErrEmailAlreadyExists{Email: rec.Email}
	}
	s.records[rec.ID] = rec
	u := rec.User
	return &u, nil
}

func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, patch Patch) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, &ErrUserNotFound{UserID: id}
	}
	if patch.Email != nil && s.emailTaken(*patch.Email, id) {
		return nil, &ErrEmailAlreadyExists{Email: *patch.Email}
	}

	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Email != nil {
		rec.Email = *patch.Email
	}
	if patch.Avatar != nil {
		if *patch.Avatar == "" {
			rec.Avatar = nil
		} else {
			avatar := *patch.Avatar
			rec.Avatar = &avatar
		}
	}
	rec.UpdatedAt = patch.UpdatedAt
	s.records[id] = rec

	u := rec.User
	return &u, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return &ErrUserNotFound{UserID: id}
	}
	delete(s.records, id)
	return nil
}

// emailTaken must be called with the lock held.
func (s *MemoryStore) emailTaken(email string, except uuid.UUID) bool {
	for id, rec := range s.records {
		if id != except && strings.EqualFold(rec.Email, email) {
			return true
		}
	}
	return false
}
