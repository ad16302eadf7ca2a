package models

import "time"

// VerificationToken holds a pending email-verification token. One live token
// per email; issuing a new one replaces the old.
type VerificationToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Token     string    `json:"token" gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TwoFactorToken holds a short-lived 6-digit login code sent by email
type TwoFactorToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Code      string    `json:"-" gorm:"size:10;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// PasswordResetToken holds a pending password-reset token
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Token     string    `json:"token" gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (VerificationToken) TableName() string  { return "verification_tokens" }
func (TwoFactorToken) TableName() string     { return "two_factor_tokens" }
func (PasswordResetToken) TableName() string { return "password_reset_tokens" }

// IsExpired checks if the verification token is past its expiry
func (t *VerificationToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsExpired checks if the two-factor code is past its expiry
func (t *TwoFactorToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsExpired checks if the reset token is past its expiry
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
