package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON

	// RefreshToken is the single active refresh token for the user,
	// nil when logged out.
	RefreshToken *string `json:"-"`

	IsEmailVerified         bool       `json:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-"`
	EmailVerificationExpiry *time.Time `json:"-"`
	ForgotPasswordToken     *string    `json:"-"`
	ForgotPasswordExpiry    *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user with every secret field zeroed.
// This is the projection attached to request contexts and returned to
// clients; the JSON tags above already hide the secrets on the wire,
// Sanitized keeps them out of process memory handed to handlers too.
func (u *User) Sanitized() *User {
	s := *u
	s.PasswordHash = ""
	s.RefreshToken = nil
	s.EmailVerificationToken = nil
	s.EmailVerificationExpiry = nil
	s.ForgotPasswordToken = nil
	s.ForgotPasswordExpiry = nil
	return &s
}

// HasValidVerificationToken reports whether a verification token is
// outstanding and unexpired. A token is valid only if the hash and its
// paired expiry are both present and the expiry is in the future.
func (u *User) HasValidVerificationToken(now time.Time) bool {
	return u.EmailVerificationToken != nil && u.EmailVerificationExpiry != nil && u.EmailVerificationExpiry.After(now)
}

// HasValidResetToken reports whether a password reset token is
// outstanding and unexpired.
func (u *User) HasValidResetToken(now time.Time) bool {
	return u.ForgotPasswordToken != nil && u.ForgotPasswordExpiry != nil && u.ForgotPasswordExpiry.After(now)
}
