package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests. It mirrors the
// Postgres repository's semantics: unique email/username, token
// lookups matching only unexpired hashes, whole-record saves.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]*User)}
}

func (s *MemoryStore) Create(_ context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, ErrDuplicateEmail
		}
		if existing.Username == u.Username {
			return nil, ErrDuplicateUsername
		}
	}

	stored := *u
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	return s.find(func(u *User) bool { return u.Email == email })
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (*User, error) {
	return s.find(func(u *User) bool { return u.Username == username })
}

func (s *MemoryStore) GetByEmailOrUsername(_ context.Context, email, username string) (*User, error) {
	return s.find(func(u *User) bool { return u.Email == email || u.Username == username })
}

func (s *MemoryStore) GetByVerificationToken(_ context.Context, tokenHash string) (*User, error) {
	now := time.Now()
	return s.find(func(u *User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == tokenHash && u.HasValidVerificationToken(now)
	})
}

func (s *MemoryStore) GetByResetToken(_ context.Context, tokenHash string) (*User, error) {
	now := time.Now()
	return s.find(func(u *User) bool {
		return u.ForgotPasswordToken != nil && *u.ForgotPasswordToken == tokenHash && u.HasValidResetToken(now)
	})
}

func (s *MemoryStore) Update(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}

	stored := *u
	stored.UpdatedAt = time.Now()
	s.users[u.ID] = &stored
	u.UpdatedAt = stored.UpdatedAt

	return nil
}

func (s *MemoryStore) find(match func(*User) bool) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func copyUser(u *User) *User {
	c := *u
	return &c
}
