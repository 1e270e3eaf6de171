package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService(nil)
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.CreateToken(userID, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)
	other, err := NewJWTService([]byte("other-secret"))
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), time.Minute)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestJWTService_ConsecutiveTokensDiffer(t *testing.T) {
	svc, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)

	userID := uuid.New()
	first, err := svc.CreateToken(userID, time.Minute)
	require.NoError(t, err)
	second, err := svc.CreateToken(userID, time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
