package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role values for access control.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

const bcryptCost = 10

// User represents a customer or staff account.
//
// OtpCode/OtpExpires hold the single pending one-time code (hashed at rest);
// HashedRefreshToken holds the SHA-256 digest of the one active refresh
// token. An inactive user cannot authenticate via login or refresh.
type User struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	Email              string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password           string         `json:"-" gorm:"-"` // plaintext input, hashed by BeforeSave
	PasswordHash       string         `json:"-" gorm:"size:255;not null"`
	FullName           string         `json:"full_name" gorm:"size:255;not null"`
	Phone              string         `json:"phone" gorm:"size:32"`
	Role               string         `json:"role" gorm:"size:20;not null;default:'USER';index"`
	IsActive           bool           `json:"is_active" gorm:"default:false;index"`
	OtpCode            *string        `json:"-" gorm:"size:255"`
	OtpExpires         *time.Time     `json:"-"`
	HashedRefreshToken *string        `json:"-" gorm:"size:64"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeSave hashes the transient Password whenever one is supplied, so every
// write path through the store produces a bcrypt hash and callers never hash
// themselves.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	u.Password = ""
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsStaff reports whether the user holds an admin role.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
