package repository

import (
	"context"
	"errors"
	"time"

	authdomain "cryptnote-backend/internal/auth/domain"
)

var (
	// ErrDuplicateEmail is returned by Create when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserGone is returned by Redeem when the token's user no longer exists.
	ErrUserGone = errors.New("user no longer exists")
)

// UserRepository is the credential store.
// Finders return (nil, nil) when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	Update(ctx context.Context, user *authdomain.User) error
	// Delete removes the user and reports whether a record existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// ResetTokenRepository stores password reset grants.
type ResetTokenRepository interface {
	// Upsert stores token, replacing any token the same user already holds.
	Upsert(ctx context.Context, token *authdomain.ResetToken) error
	// FindValidByHash returns the token with the given hash if it has not expired at now.
	FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (*authdomain.ResetToken, error)
	// Redeem deletes the token and stores passwordHash for userID in one
	// transaction. It reports false when another caller already removed the
	// token; nothing changes unless both writes succeed.
	Redeem(ctx context.Context, tokenID, userID, passwordHash string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// OtpTokenRepository stores signup verification codes.
type OtpTokenRepository interface {
	// Upsert stores token, replacing any code already issued for the same email.
	Upsert(ctx context.Context, token *authdomain.OtpToken) error
	// FindValidByEmail returns the live code for email, if any.
	FindValidByEmail(ctx context.Context, email string, now time.Time) (*authdomain.OtpToken, error)
	// Consume deletes the code and reports whether this call removed it.
	Consume(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
