package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	authdomain "cryptnote-backend/internal/auth/domain"
	authdto "cryptnote-backend/internal/auth/dto"
	"cryptnote-backend/internal/auth/repository"
	"cryptnote-backend/pkg/apperror"
	"cryptnote-backend/pkg/config"
	"cryptnote-backend/pkg/sanitize"
	"cryptnote-backend/pkg/validation"
)

var (
	ErrEmailExists         = apperror.Conflict("Email Already Exists")
	ErrEmailRegistered     = apperror.Conflict("Email already registered")
	ErrInvalidCredentials  = apperror.New(apperror.KindInvalidCredentials, "Please try to login with correct credentials")
	ErrUserNotFound        = apperror.NotFound("User not found")
	ErrUserNoLongerExists  = apperror.NotFound("User no longer exists")
	ErrInvalidResetToken   = apperror.New(apperror.KindInvalidToken, "Invalid or expired token")
	ErrOtpExpiredOrMissing = apperror.New(apperror.KindExpiredOrMissing, "OTP expired or not found.")
	ErrInvalidOtp          = apperror.New(apperror.KindInvalidOTP, "Invalid OTP.")
	ErrUnauthorized        = apperror.Unauthorized("Unauthorized")
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo      repository.UserRepository
	resetRepo     repository.ResetTokenRepository
	otpRepo       repository.OtpTokenRepository
	mailer        Mailer
	config        *config.Config
	onUserDeleted UserDeletedFunc
	now           func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, resetRepo repository.ResetTokenRepository, otpRepo repository.OtpTokenRepository, mailer Mailer, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		otpRepo:   otpRepo,
		mailer:    mailer,
		config:    cfg,
		now:       time.Now,
	}
}

func (u *authUsecase) SetUserDeletedCallback(fn UserDeletedFunc) {
	u.onUserDeleted = fn
}

func (u *authUsecase) CreateUser(ctx context.Context, req *authdto.CreateUserRequest) (string, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = sanitize.Text(req.Name)
	if err := validation.Validate(req).Err(); err != nil {
		return "", err
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	if existing != nil {
		return "", ErrEmailExists
	}

	hashedPassword, err := hashPassword(req.Password, u.config.BcryptCost)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &authdomain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailExists
		}
		return "", apperror.Internal(fmt.Errorf("create user: %w", err))
	}

	return u.issueSessionToken(user.ID)
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req).Err(); err != nil {
		return "", err
	}

	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if !checkPasswordHash(req.Password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return u.issueSessionToken(user.ID)
}

func (u *authUsecase) GetUser(ctx context.Context, userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) UpdateUser(ctx context.Context, userID string, req *authdto.UpdateUserRequest) (*authdomain.User, error) {
	req.Name = sanitize.Optional(req.Name)
	if err := validation.Validate(req).Err(); err != nil {
		return nil, err
	}

	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := hashPassword(*req.Password, u.config.BcryptCost)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("hash password: %w", err))
		}
		user.Password = hashed
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(fmt.Errorf("update user: %w", err))
	}
	return user, nil
}

func (u *authUsecase) DeleteUser(ctx context.Context, userID string) error {
	deleted, err := u.userRepo.Delete(ctx, userID)
	if err != nil {
		return apperror.Internal(fmt.Errorf("delete user: %w", err))
	}
	if !deleted {
		return ErrUserNotFound
	}

	// The account is gone at this point; cleanup failures are logged, not returned.
	if err := u.resetRepo.DeleteByUserID(ctx, userID); err != nil {
		log.Printf("[AuthUsecase] Failed to delete reset tokens of user %s: %v", userID, err)
	}
	if u.onUserDeleted != nil {
		if err := u.onUserDeleted(ctx, userID); err != nil {
			log.Printf("[AuthUsecase] Failed to clean up data of user %s: %v", userID, err)
		}
	}
	return nil
}

func (u *authUsecase) CheckEmail(ctx context.Context, email string) (bool, error) {
	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	return user != nil, nil
}

func (u *authUsecase) RequestPasswordReset(ctx context.Context, req *authdto.ForgotPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req).Err(); err != nil {
		return err
	}

	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	if user == nil {
		return ErrUserNotFound
	}

	raw, hash, err := newResetToken()
	if err != nil {
		return apperror.Internal(err)
	}

	now := u.now()
	token := &authdomain.ResetToken{
		UserID:    user.ID,
		TokenHash: hash,
		CreatedAt: now,
		ExpireAt:  now.Add(u.config.ResetTokenTTL),
	}
	if err := u.resetRepo.Upsert(ctx, token); err != nil {
		return apperror.Internal(fmt.Errorf("store reset token: %w", err))
	}

	resetURL := strings.TrimRight(u.config.LiveURL, "/") + "/resetpassword/" + raw
	if err := u.mailer.SendPasswordReset(ctx, user.Email, resetURL, u.config.ResetTokenTTL); err != nil {
		log.Printf("[AuthUsecase] Failed to send reset email to user %s: %v", user.ID, err)
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, rawToken string, req *authdto.ResetPasswordRequest) error {
	if err := validation.Validate(req).Err(); err != nil {
		return err
	}
	if rawToken == "" {
		return ErrInvalidResetToken
	}

	token, err := u.resetRepo.FindValidByHash(ctx, hashResetToken(rawToken), u.now())
	if err != nil {
		return apperror.Internal(fmt.Errorf("find reset token: %w", err))
	}
	if token == nil {
		return ErrInvalidResetToken
	}

	user, err := u.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return apperror.Internal(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return ErrUserNoLongerExists
	}

	hashed, err := hashPassword(req.Password, u.config.BcryptCost)
	if err != nil {
		return apperror.Internal(fmt.Errorf("hash password: %w", err))
	}

	// Only the caller whose delete removed the row changes the password; a failed
	// password write leaves the token in place.
	redeemed, err := u.resetRepo.Redeem(ctx, token.ID, user.ID, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrUserGone) {
			return ErrUserNoLongerExists
		}
		return apperror.Internal(fmt.Errorf("redeem reset token: %w", err))
	}
	if !redeemed {
		return ErrInvalidResetToken
	}
	return nil
}

func (u *authUsecase) SendSignupOtp(ctx context.Context, req *authdto.SendOtpRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req).Err(); err != nil {
		return err
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	if existing != nil {
		return ErrEmailRegistered
	}

	code, err := newOtpCode()
	if err != nil {
		return apperror.Internal(err)
	}

	// The code already in the user's inbox stays valid until the new one is delivered.
	if err := u.mailer.SendSignupOTP(ctx, req.Email, code, u.config.OtpTTL); err != nil {
		log.Printf("[AuthUsecase] Failed to send signup OTP: %v", err)
		return apperror.Internal(err)
	}

	now := u.now()
	token := &authdomain.OtpToken{
		Email:     req.Email,
		Code:      code,
		CreatedAt: now,
		ExpireAt:  now.Add(u.config.OtpTTL),
	}
	if err := u.otpRepo.Upsert(ctx, token); err != nil {
		return apperror.Internal(fmt.Errorf("store otp: %w", err))
	}
	return nil
}

func (u *authUsecase) VerifyOtp(ctx context.Context, req *authdto.VerifyOtpRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req).Err(); err != nil {
		return err
	}

	record, err := u.otpRepo.FindValidByEmail(ctx, req.Email, u.now())
	if err != nil {
		return apperror.Internal(fmt.Errorf("find otp: %w", err))
	}
	if record == nil {
		return ErrOtpExpiredOrMissing
	}
	if !otpMatches(record.Code, req.Otp) {
		return ErrInvalidOtp
	}

	consumed, err := u.otpRepo.Consume(ctx, record.ID)
	if err != nil {
		return apperror.Internal(fmt.Errorf("consume otp: %w", err))
	}
	if !consumed {
		return ErrOtpExpiredOrMissing
	}
	return nil
}

func (u *authUsecase) issueSessionToken(userID string) (string, error) {
	token, err := u.generateSessionToken(userID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
