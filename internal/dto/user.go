package dto

import (
	"time"

	"github.com/finansync/finansync-api/internal/db/models"
)

// UserResponse is the profile of the authenticated user.
type UserResponse struct {
	Email       string            `json:"email"`
	FirstName   *string           `json:"firstName"`
	LastName    *string           `json:"lastName"`
	PhoneNumber *string           `json:"phoneNumber"`
	Settings    []SettingResponse `json:"settings"`
}

// NewUserResponse maps a user loaded with its settings.
func NewUserResponse(u *models.AppUser) UserResponse {
	return UserResponse{
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Settings:    NewSettingResponses(u.Settings),
	}
}

// AuthenticationRequest holds local credentials.
type AuthenticationRequest struct {
	UserName string `json:"userName" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=256"`
}

// AuthenticationResponse carries an issued bearer token.
type AuthenticationResponse struct {
	BearerToken         string     `json:"bearerToken"`
	TokenExpirationTime *time.Time `json:"tokenExpirationTime"`
}
