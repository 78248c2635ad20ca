package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finansync/finansync-api/internal/db/models"
)

// AccountRequest creates or replaces an account.
type AccountRequest struct {
	Name        string          `json:"name" validate:"required,max=64"`
	Currency    string          `json:"currency" validate:"required,len=3,alpha,uppercase"`
	Balance     decimal.Decimal `json:"balance"`
	Description *string         `json:"description" validate:"omitempty,max=256"`
}

// AccountResponse is an account as returned by the API.
type AccountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewAccountResponse maps an account.
func NewAccountResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Currency:    a.Currency,
		Balance:     a.Balance,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// TransactionRequest creates or replaces a transaction.
type TransactionRequest struct {
	AccountID   string          `json:"accountId" validate:"required,max=36"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description" validate:"omitempty,max=256"`
	OccurredAt  time.Time       `json:"occurredAt" validate:"required"`
}

// TransactionResponse is a transaction as returned by the API.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewTransactionResponse maps a transaction.
func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Amount:      t.Amount,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
