// Package user provides read access to user profiles.
package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/db/models"
	"github.com/finansync/finansync-api/internal/dto"
)

// Service reads user profiles.
type Service struct {
	db *gorm.DB
}

// New creates a user service.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Exists reports whether a user with the given id exists.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	var n int64

	err := s.db.WithContext(ctx).Model(&models.AppUser{}).Where("id = ?", userID).Count(&n).Error
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// GetProfile returns the profile of the user together with the stored settings.
// A missing user yields nil without an error.
func (s *Service) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if userID == "" {
		return nil, nil
	}

	var u models.AppUser

	err := s.db.WithContext(ctx).
		Preload("Settings", func(db *gorm.DB) *gorm.DB {
			return db.Order("setting_id")
		}).
		Preload("Settings.Setting").
		First(&u, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(&u)

	return &resp, nil
}
