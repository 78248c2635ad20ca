package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a financial account owned by a user.
type Account struct {
	UserEntity
	Name         string          `gorm:"size:64;not null"`
	Currency     string          `gorm:"size:3;not null"`
	Balance      decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Description  *string         `gorm:"size:256"`
	Transactions []Transaction   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Transaction is a booking on an Account.
type Transaction struct {
	UserEntity
	AccountID   string          `gorm:"size:36;index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Description *string         `gorm:"size:256"`
	OccurredAt  time.Time       `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// All returns every model for AutoMigrate, in dependency order.
func All() []any {
	return []any{
		&AppUser{},
		&Setting{},
		&UserSetting{},
		&Account{},
		&Transaction{},
	}
}
