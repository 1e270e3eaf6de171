package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the bun model for the users table. Single-use token columns
// come in pairs (token hash + expiry) that are always set or cleared
// together; the token columns store SHA-256 hex digests, never raw
// token values.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string    `bun:"email,notnull,unique"`
	Username     string    `bun:"username,notnull,unique"`
	FullName     string    `bun:"full_name,nullzero"`
	PasswordHash string    `bun:"password_hash,notnull"`

	// At most one active refresh token per user; overwritten on each
	// login/refresh, cleared on logout.
	RefreshToken *string `bun:"refresh_token"`

	IsEmailVerified         bool       `bun:"is_email_verified,notnull,default:false"`
	EmailVerificationToken  *string    `bun:"email_verification_token"`
	EmailVerificationExpiry *time.Time `bun:"email_verification_expiry"`
	ForgotPasswordToken     *string    `bun:"forgot_password_token"`
	ForgotPasswordExpiry    *time.Time `bun:"forgot_password_expiry"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
