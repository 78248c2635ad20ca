package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.AppUser, error) {
	user, err := p.GetUserByUserName(ctx, username)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// NewUser holds the data of a user to create.
type NewUser struct {
	UserName    string
	Email       string
	Password    string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(ctx context.Context, nu NewUser) (*models.AppUser, error) {
	if nu.UserName == "" || nu.Email == "" || nu.Password == "" {
		return nil, ErrMissingUserData
	}

	db := p.db.WithContext(ctx)

	var existingUser models.AppUser

	err := db.Where("user_name = ? OR email = ?", nu.UserName, nu.Email).First(&existingUser).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := models.HashPassword(nu.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.AppUser{
		Active:       true,
		UserName:     nu.UserName,
		Email:        nu.Email,
		PasswordHash: hash,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		PhoneNumber:  nu.PhoneNumber,
	}

	if err = db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ChangePassword changes a user's password.
func (p *LocalProvider) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	var user models.AppUser
	if err := p.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	hash, err := models.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return p.db.WithContext(ctx).Model(&models.AppUser{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

// GetUserByUserName retrieves a user by user name.
func (p *LocalProvider) GetUserByUserName(ctx context.Context, username string) (*models.AppUser, error) {
	var user models.AppUser

	err := p.db.WithContext(ctx).Where("user_name = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// CountUsers returns the number of users.
func (p *LocalProvider) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Model(&models.AppUser{}).Count(&n).Error

	return n, err
}
