package domain

import "time"

// ResetToken is a single-use password reset grant. Only the sha256 hash of the
// secret sent by email is stored; at most one live token exists per user.
type ResetToken struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"uniqueIndex;not null"`
	TokenHash string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	ExpireAt  time.Time `gorm:"index;not null"`
}

// OtpToken is a signup verification code bound to an email address. At most one
// live code exists per email.
type OtpToken struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Code      string    `gorm:"not null"`
	CreatedAt time.Time
	ExpireAt  time.Time `gorm:"index;not null"`
}
