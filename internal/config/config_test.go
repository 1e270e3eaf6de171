package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.TrustedOrigins)

	assert.Equal(t, TokenBackendJWT, cfg.Auth.TokenBackend)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenDuration)
	assert.Equal(t, 20*time.Minute, cfg.Auth.TempTokenDuration)
	assert.False(t, cfg.Auth.RevokeSessionOnPasswordChange)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("ACCESS_TOKEN_DURATION", "600")
	t.Setenv("TRUSTED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("REVOKE_SESSION_ON_PASSWORD_CHANGE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 10*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.TrustedOrigins)
	assert.True(t, cfg.Auth.RevokeSessionOnPasswordChange)
}

func TestAuthConfig_ValidateTokenBackend(t *testing.T) {
	key32 := "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr bool
	}{
		{
			name: "jwt accepts any secret length",
			cfg: AuthConfig{
				TokenBackend:       TokenBackendJWT,
				AccessTokenSecret:  []byte("short"),
				RefreshTokenSecret: []byte("short"),
			},
		},
		{
			name: "paseto requires 32-byte secrets",
			cfg: AuthConfig{
				TokenBackend:       TokenBackendPaseto,
				AccessTokenSecret:  []byte("short"),
				RefreshTokenSecret: []byte(key32),
			},
			wantErr: true,
		},
		{
			name: "paseto with 32-byte secrets",
			cfg: AuthConfig{
				TokenBackend:       TokenBackendPaseto,
				AccessTokenSecret:  []byte(key32),
				RefreshTokenSecret: []byte(key32),
			},
		},
		{
			name: "unknown backend",
			cfg: AuthConfig{
				TokenBackend:       "opaque",
				AccessTokenSecret:  []byte("secret"),
				RefreshTokenSecret: []byte("secret"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		DBName:   "goauth",
		SSLMode:  "disable",
	}

	got := cfg.ConnectionString()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=goauth sslmode=disable", got)

	cfg.ChannelBinding = "require"
	assert.Contains(t, cfg.ConnectionString(), "channel_binding=require")
}
