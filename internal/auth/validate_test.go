package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUsername("  Alice "))
	assert.Equal(t, "bob", NormalizeUsername("BOB"))
	assert.Equal(t, "", NormalizeUsername("   "))
}

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        RegisterRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  RegisterRequest{Email: "a@x.com", Username: "alice", Password: "secret123"},
		},
		{
			name:       "all missing",
			req:        RegisterRequest{},
			wantFields: []string{"email", "username", "password"},
		},
		{
			name:       "invalid email",
			req:        RegisterRequest{Email: "not-an-email", Username: "alice", Password: "secret123"},
			wantFields: []string{"email"},
		},
		{
			name:       "short username",
			req:        RegisterRequest{Email: "a@x.com", Username: "al", Password: "secret123"},
			wantFields: []string{"username"},
		},
		{
			name:       "short password",
			req:        RegisterRequest{Email: "a@x.com", Username: "alice", Password: "short"},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRegisterRequest(&tt.req)

			fields := make([]string, 0, len(got))
			for _, fe := range got {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestValidateRegisterRequest_Normalizes(t *testing.T) {
	req := RegisterRequest{Email: " a@x.com ", Username: " Alice ", Password: "secret123"}
	assert.Empty(t, validateRegisterRequest(&req))

	assert.Equal(t, "a@x.com", req.Email)
	assert.Equal(t, "alice", req.Username)
}

func TestValidateLoginRequest(t *testing.T) {
	req := LoginRequest{Email: "a@x.com", Password: "anything"}
	assert.Empty(t, validateLoginRequest(&req))

	// Login does not enforce a minimum password length; presence only
	req = LoginRequest{Email: "a@x.com", Password: "x"}
	assert.Empty(t, validateLoginRequest(&req))

	req = LoginRequest{}
	got := validateLoginRequest(&req)
	assert.Len(t, got, 2)
}

func TestValidateChangePasswordRequest(t *testing.T) {
	req := ChangePasswordRequest{OldPassword: "old", NewPassword: "new-password"}
	assert.Empty(t, validateChangePasswordRequest(&req))

	req = ChangePasswordRequest{NewPassword: "short"}
	got := validateChangePasswordRequest(&req)
	assert.Len(t, got, 2)
}
