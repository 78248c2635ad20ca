// Package models contains database model definitions.
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is the base of every model identified by a string id.
type Entity struct {
	ID string `gorm:"primaryKey;size:36"`
}

// BeforeCreate assigns a random UUID when no id was set.
func (e *Entity) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	return nil
}

// UserEntity is an Entity owned by an AppUser.
// Rows of a UserEntity are only ever read or written through their owner's id.
type UserEntity struct {
	Entity
	AppUserID string `gorm:"size:36;index;not null"`
}

// OwnerColumn is the column referencing the owning user.
const OwnerColumn = "app_user_id"
