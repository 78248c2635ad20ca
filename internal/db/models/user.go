package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AppUser represents a user account.
type AppUser struct {
	Entity
	// Active indicates whether the user can authenticate.
	Active bool `gorm:"not null"`
	// UserName is the unique login name.
	UserName string `gorm:"uniqueIndex;size:256;not null"`
	// Email is the unique email address.
	Email string `gorm:"uniqueIndex;size:256;not null"`
	// PasswordHash is the Argon2id hash of the password.
	PasswordHash string `gorm:"size:255"`
	FirstName    *string `gorm:"size:64"`
	LastName     *string `gorm:"size:64"`
	PhoneNumber  *string `gorm:"size:32"`
	// Settings are the stored overrides of catalog settings.
	Settings  []UserSetting `gorm:"foreignKey:AppUserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name app_users.
func (AppUser) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password using Argon2id with the default parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword compares password against the stored hash in constant time.
func (u *AppUser) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.PasswordHash)
	if err != nil {
		log.Error().Err(err).Str("user", u.ID).Msg("failed to verify password")
		return false
	}

	return match
}
