package repository

import (
	"context"
	"errors"
	"time"

	authdomain "cryptnote-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type resetTokenRepository struct {
	db *gorm.DB
}

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

// Upsert is a single INSERT ... ON CONFLICT (user_id) DO UPDATE, so two
// concurrent requests for the same user cannot leave two live tokens behind.
func (r *resetTokenRepository) Upsert(ctx context.Context, token *authdomain.ResetToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "token_hash", "created_at", "expire_at"}),
	}).Create(token).Error
}

func (r *resetTokenRepository) FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (*authdomain.ResetToken, error) {
	var token authdomain.ResetToken
	err := r.db.WithContext(ctx).Where("token_hash = ? AND expire_at > ?", tokenHash, now).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *resetTokenRepository) Redeem(ctx context.Context, tokenID, userID, passwordHash string) (bool, error) {
	redeemed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", tokenID).Delete(&authdomain.ResetToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}

		res = tx.Model(&authdomain.User{}).Where("id = ?", userID).Updates(map[string]any{
			"password":   passwordHash,
			"updated_at": time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserGone
		}
		redeemed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return redeemed, nil
}

func (r *resetTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&authdomain.ResetToken{}).Error
}

func (r *resetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expire_at <= ?", now).Delete(&authdomain.ResetToken{})
	return res.RowsAffected, res.Error
}

type otpTokenRepository struct {
	db *gorm.DB
}

func NewOtpTokenRepository(db *gorm.DB) OtpTokenRepository {
	return &otpTokenRepository{db: db}
}

// Upsert replaces the code for the email atomically (ON CONFLICT (email) DO UPDATE).
func (r *otpTokenRepository) Upsert(ctx context.Context, token *authdomain.OtpToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "code", "created_at", "expire_at"}),
	}).Create(token).Error
}

func (r *otpTokenRepository) FindValidByEmail(ctx context.Context, email string, now time.Time) (*authdomain.OtpToken, error) {
	var token authdomain.OtpToken
	err := r.db.WithContext(ctx).Where("email = ? AND expire_at > ?", email, now).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *otpTokenRepository) Consume(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&authdomain.OtpToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *otpTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expire_at <= ?", now).Delete(&authdomain.OtpToken{})
	return res.RowsAffected, res.Error
}
