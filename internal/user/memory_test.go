package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredUser(t *testing.T, s *MemoryStore, email, username string) *User {
	t.Helper()
	created, err := s.Create(context.Background(), &User{
		Email:        email,
		Username:     username,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return created
}

func TestMemoryStore_CreateAndLookups(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created := newStoredUser(t, s, "a@x.com", "alice")
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	byEmail, err := s.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEither, err := s.GetByEmailOrUsername(ctx, "nobody@x.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEither.ID)

	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UniqueConstraints(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	newStoredUser(t, s, "a@x.com", "alice")

	_, err := s.Create(ctx, &User{Email: "a@x.com", Username: "other"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = s.Create(ctx, &User{Email: "other@x.com", Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestMemoryStore_Update(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created := newStoredUser(t, s, "a@x.com", "alice")

	created.IsEmailVerified = true
	require.NoError(t, s.Update(ctx, created))

	stored, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsEmailVerified)

	ghost := &User{ID: uuid.New()}
	assert.ErrorIs(t, s.Update(ctx, ghost), ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created := newStoredUser(t, s, "a@x.com", "alice")

	// Mutating a returned record must not leak into the store
	fetched, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	fetched.Email = "tampered@x.com"

	again, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", again.Email)
}

func TestMemoryStore_TokenLookups(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created := newStoredUser(t, s, "a@x.com", "alice")

	hash := "deadbeef"
	future := time.Now().Add(20 * time.Minute)
	created.EmailVerificationToken = &hash
	created.EmailVerificationExpiry = &future
	created.ForgotPasswordToken = &hash
	created.ForgotPasswordExpiry = &future
	require.NoError(t, s.Update(ctx, created))

	byVerification, err := s.GetByVerificationToken(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byVerification.ID)

	byReset, err := s.GetByResetToken(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byReset.ID)

	_, err = s.GetByVerificationToken(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	// An expired token no longer matches even with the right hash
	past := time.Now().Add(-time.Minute)
	created.EmailVerificationExpiry = &past
	created.ForgotPasswordExpiry = &past
	require.NoError(t, s.Update(ctx, created))

	_, err = s.GetByVerificationToken(ctx, hash)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByResetToken(ctx, hash)
	assert.ErrorIs(t, err, ErrNotFound)
}
