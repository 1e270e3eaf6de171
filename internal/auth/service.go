package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-auth-service/internal/config"
	"github.com/redmonkez12/go-auth-service/internal/logging"
	"github.com/redmonkez12/go-auth-service/internal/user"
)

var (
	ErrUserExists            = errors.New("user with email or username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrInvalidOrExpiredToken = errors.New("token is invalid or expired")
	ErrEmailAlreadyVerified  = errors.New("email is already verified")
)

// EmailSender defines the interface for outbound auth emails
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, toEmail, username, rawToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, username, rawToken string) error
}

// AuthTokens is an access/refresh token pair
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service handles authentication business logic
type Service struct {
	users         user.Store
	accessTokens  TokenService
	refreshTokens TokenService
	email         EmailSender
	logger        *logging.Logger
	cfg           config.AuthConfig
}

func NewService(
	users user.Store,
	accessTokens TokenService,
	refreshTokens TokenService,
	email EmailSender,
	logger *logging.Logger,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		users:         users,
		accessTokens:  accessTokens,
		refreshTokens: refreshTokens,
		email:         email,
		logger:        logger,
		cfg:           cfg,
	}
}

// Register creates a new user account and sends a verification email.
// Returns the sanitized user.
func (s *Service) Register(ctx context.Context, email, username, password, fullName string) (*user.User, error) {
	// Conflict check covers both unique fields in one lookup
	if _, err := s.users.GetByEmailOrUsername(ctx, email, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, hashedToken, err := GenerateSingleUseToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	expiry := time.Now().Add(s.cfg.TempTokenDuration)

	newUser, err := s.users.Create(ctx, &user.User{
		Email:                   email,
		Username:                username,
		FullName:                fullName,
		PasswordHash:            passwordHash,
		IsEmailVerified:         false,
		EmailVerificationToken:  &hashedToken,
		EmailVerificationExpiry: &expiry,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) || errors.Is(err, user.ErrDuplicateUsername) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendVerificationEmail(newUser.Email, newUser.Username, rawToken)

	return newUser.Sanitized(), nil
}

// Login authenticates a user, mints an access/refresh pair and
// persists the refresh token on the user record. Returns the sanitized
// user and the token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *AuthTokens, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, user.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(existing.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokenPair(ctx, existing)
	if err != nil {
		return nil, nil, err
	}

	return existing.Sanitized(), tokens, nil
}

// Refresh rotates the token pair. The incoming refresh token must
// verify against the refresh secret AND exactly equal the token stored
// on the user record; only the single most-recently-issued refresh
// token is ever valid.
func (s *Service) Refresh(ctx context.Context, incomingToken string) (*AuthTokens, error) {
	claims, err := s.refreshTokens.VerifyToken(incomingToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	existing, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Stale or replayed token: signature is fine but it is no longer
	// the stored one
	if existing.RefreshToken == nil || *existing.RefreshToken != incomingToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokenPair(ctx, existing)
}

// Logout clears the stored refresh token
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	existing, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	existing.RefreshToken = nil
	if err := s.users.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// VerifyEmail consumes an email verification token. The lookup is by
// hash and only matches unexpired tokens; clearing the stored hash on
// success makes replay with the same raw token fail.
func (s *Service) VerifyEmail(ctx context.Context, rawToken string) error {
	existing, err := s.users.GetByVerificationToken(ctx, HashSingleUseToken(rawToken))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to find user by verification token: %w", err)
	}

	existing.EmailVerificationToken = nil
	existing.EmailVerificationExpiry = nil
	existing.IsEmailVerified = true

	if err := s.users.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to mark email as verified: %w", err)
	}

	return nil
}

// ResendVerification issues a fresh verification token for the
// authenticated user and emails it.
func (s *Service) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	existing, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if existing.IsEmailVerified {
		return ErrEmailAlreadyVerified
	}

	rawToken, hashedToken, err := GenerateSingleUseToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	expiry := time.Now().Add(s.cfg.TempTokenDuration)

	existing.EmailVerificationToken = &hashedToken
	existing.EmailVerificationExpiry = &expiry

	if err := s.users.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	s.sendVerificationEmail(existing.Email, existing.Username, rawToken)

	return nil
}

// RequestPasswordReset generates a reset token for the account and
// emails it. Unknown emails surface user.ErrNotFound.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	rawToken, hashedToken, err := GenerateSingleUseToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().Add(s.cfg.TempTokenDuration)

	existing.ForgotPasswordToken = &hashedToken
	existing.ForgotPasswordExpiry = &expiry

	if err := s.users.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// Send reset email in a goroutine (non-blocking); failures are
	// logged, never surfaced to the request
	go func() {
		emailCtx := context.Background()
		if err := s.email.SendPasswordResetEmail(emailCtx, existing.Email, existing.Username, rawToken); err != nil {
			s.logger.Warn("failed to send password reset email", "email", existing.Email, "error", err)
		}
	}()

	return nil
}

// ResetPassword consumes a reset token and replaces the password hash
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	existing, err := s.users.GetByResetToken(ctx, HashSingleUseToken(rawToken))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to find user by reset token: %w", err)
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	existing.ForgotPasswordToken = nil
	existing.ForgotPasswordExpiry = nil
	existing.PasswordHash = passwordHash

	if err := s.users.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

// ChangePassword replaces the password hash for an authenticated user
// after verifying the old password. The stored refresh token survives
// unless RevokeSessionOnPasswordChange is configured.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	existing, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(existing.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	existing.PasswordHash = passwordHash
	if s.cfg.RevokeSessionOnPasswordChange {
		existing.RefreshToken = nil
	}

	if err := s.users.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	return nil
}

// issueTokenPair mints an access/refresh pair and persists the refresh
// token verbatim on the user record, overwriting any previous one
// (last-writer-wins, no rotation history).
func (s *Service) issueTokenPair(ctx context.Context, u *user.User) (*AuthTokens, error) {
	accessToken, err := s.accessTokens.CreateToken(u.ID, s.cfg.AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := s.refreshTokens.CreateToken(u.ID, s.cfg.RefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	u.RefreshToken = &refreshToken
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) sendVerificationEmail(email, username, rawToken string) {
	// Send verification email in a goroutine (non-blocking). A fresh
	// context avoids cancellation when the request finishes; the user
	// can request a new verification email later if delivery fails.
	go func() {
		emailCtx := context.Background()
		if err := s.email.SendVerificationEmail(emailCtx, email, username, rawToken); err != nil {
			s.logger.Warn("failed to send verification email", "email", email, "error", err)
		}
	}()
}
