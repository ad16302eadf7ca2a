package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	FullName          string     `json:"full_name" gorm:"size:255;not null"`
	Email             string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash      *string    `json:"-" gorm:"size:255"` // nil for OAuth-only accounts
	Role              UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'user';check:role IN ('user','admin')"`
	EmailVerifiedAt   *time.Time `json:"email_verified_at"`
	TwoFactorEnabled  bool       `json:"two_factor_enabled" gorm:"default:false"`
	ProfilePictureURL *string    `json:"profile_picture_url" gorm:"size:255"`
	OAuthProvider     *string    `json:"oauth_provider,omitempty" gorm:"size:50"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Bookings      []Booking      `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsVerified checks if the user has confirmed their email address
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

// HasPassword reports whether the account has credentials login enabled
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
