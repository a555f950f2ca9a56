package usecase

import (
	"context"
	"time"

	authdomain "cryptnote-backend/internal/auth/domain"
	authdto "cryptnote-backend/internal/auth/dto"
)

// AuthUsecase defines the credential and token lifecycle operations
type AuthUsecase interface {
	// CreateUser registers an account and returns a session token
	CreateUser(ctx context.Context, req *authdto.CreateUserRequest) (string, error)

	// Login checks credentials and returns a session token
	Login(ctx context.Context, req *authdto.LoginRequest) (string, error)

	// GetUser returns the caller's record
	GetUser(ctx context.Context, userID string) (*authdomain.User, error)

	// UpdateUser changes name and/or password of the caller
	UpdateUser(ctx context.Context, userID string, req *authdto.UpdateUserRequest) (*authdomain.User, error)

	// DeleteUser removes the caller's account
	DeleteUser(ctx context.Context, userID string) error

	// CheckEmail reports whether an account exists for email
	CheckEmail(ctx context.Context, email string) (bool, error)

	// RequestPasswordReset emails a single-use reset link
	RequestPasswordReset(ctx context.Context, req *authdto.ForgotPasswordRequest) error

	// ResetPassword consumes a reset token and sets a new password
	ResetPassword(ctx context.Context, rawToken string, req *authdto.ResetPasswordRequest) error

	// SendSignupOtp emails a 6-digit code to an unregistered address
	SendSignupOtp(ctx context.Context, req *authdto.SendOtpRequest) error

	// VerifyOtp consumes a matching code; it does not create the account
	VerifyOtp(ctx context.Context, req *authdto.VerifyOtpRequest) error

	// ParseSessionToken verifies a session token and returns the user id it carries
	ParseSessionToken(token string) (string, error)

	// SetUserDeletedCallback registers cleanup run after an account is deleted
	SetUserDeletedCallback(fn UserDeletedFunc)
}

// UserDeletedFunc removes data owned by a deleted user.
type UserDeletedFunc func(ctx context.Context, userID string) error

// Mailer sends the transactional emails of the reset and OTP flows.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string, validFor time.Duration) error
	SendSignupOTP(ctx context.Context, to, code string, validFor time.Duration) error
}
