package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-auth-service/internal/httputil"
	"github.com/redmonkez12/go-auth-service/internal/user"
)

func newTestMiddleware(t *testing.T) (*Middleware, *JWTService, *user.User) {
	t.Helper()

	tokenService, err := NewJWTService([]byte("test-secret"))
	require.NoError(t, err)

	store := user.NewMemoryStore()
	created, err := store.Create(context.Background(), &user.User{
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: "irrelevant",
	})
	require.NoError(t, err)

	return NewMiddleware(tokenService, store), tokenService, created
}

// echoUser responds 200 and reports the user the middleware attached.
func echoUser(t *testing.T, captured **user.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := GetUserFromContext(r.Context())
		require.True(t, ok)
		*captured = u
		w.WriteHeader(http.StatusOK)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	mw, tokenService, created := newTestMiddleware(t)

	token, err := tokenService.CreateToken(created.ID, time.Minute)
	require.NoError(t, err)

	var got *user.User
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.RequireAuth(echoUser(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	// The context user is sanitized
	assert.Empty(t, got.PasswordHash)
}

func TestRequireAuth_Cookie(t *testing.T) {
	mw, tokenService, created := newTestMiddleware(t)

	token, err := tokenService.CreateToken(created.ID, time.Minute)
	require.NoError(t, err)

	var got *user.User
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	rec := httptest.NewRecorder()

	mw.RequireAuth(echoUser(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
}

func TestRequireAuth_Failures(t *testing.T) {
	mw, tokenService, created := newTestMiddleware(t)

	expired, err := tokenService.CreateToken(created.ID, -time.Minute)
	require.NoError(t, err)

	otherService, err := NewJWTService([]byte("other-secret"))
	require.NoError(t, err)
	wrongSecret, err := otherService.CreateToken(created.ID, time.Minute)
	require.NoError(t, err)

	unknownUser, err := tokenService.CreateToken(uuid.New(), time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{name: "no credentials", header: "", wantCode: httputil.CodeMissingAuth},
		{name: "malformed header", header: "Token abc", wantCode: httputil.CodeInvalidAuthHeader},
		{name: "garbage token", header: "Bearer not-a-token", wantCode: httputil.CodeInvalidToken},
		{name: "expired token", header: "Bearer " + expired, wantCode: httputil.CodeTokenExpired},
		{name: "wrong secret", header: "Bearer " + wrongSecret, wantCode: httputil.CodeInvalidToken},
		{name: "unknown user", header: "Bearer " + unknownUser, wantCode: httputil.CodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be reached")
			})).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}
}
