// Package transaction implements the owner scoped CRUD of account transactions.
package transaction

import (
	"context"

	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/db/models"
	"github.com/finansync/finansync-api/internal/dto"
	"github.com/finansync/finansync-api/internal/service/entity"
	"github.com/finansync/finansync-api/internal/validation"
)

// Messages of the domain validation.
const (
	AccountNotFoundMessage = "Account not found."
	ZeroAmountMessage      = "Amount cannot be zero."
)

// Service is the transaction CRUD service.
type Service = entity.Service[models.Transaction, dto.TransactionRequest, dto.TransactionResponse]

// Kind implements entity.Kind for transactions.
type Kind struct {
	entity.Base[models.Transaction]
}

// New creates the transaction service.
func New(db *gorm.DB, v *validation.Validator) *Service {
	return entity.New[models.Transaction, dto.TransactionRequest, dto.TransactionResponse](db, v, Kind{})
}

// MapForCreate implements entity.Kind.
func (Kind) MapForCreate(ownerID string, req *dto.TransactionRequest) *models.Transaction {
	t := &models.Transaction{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
		OccurredAt:  req.OccurredAt,
	}
	t.AppUserID = ownerID

	return t
}

// MapForUpdate implements entity.Kind.
func (Kind) MapForUpdate(req *dto.TransactionRequest, current *models.Transaction) {
	current.AccountID = req.AccountID
	current.Amount = req.Amount
	current.Description = req.Description
	current.OccurredAt = req.OccurredAt
}

// ToRequest implements entity.Kind.
func (Kind) ToRequest(current *models.Transaction) dto.TransactionRequest {
	return dto.TransactionRequest{
		AccountID:   current.AccountID,
		Amount:      current.Amount,
		Description: current.Description,
		OccurredAt:  current.OccurredAt,
	}
}

// ToResponse implements entity.Kind.
func (Kind) ToResponse(t *models.Transaction) dto.TransactionResponse {
	return dto.NewTransactionResponse(t)
}

// ValidateDomain checks the amount and that the account belongs to the owner.
func (Kind) ValidateDomain(
	_ context.Context, tx *gorm.DB, ownerID string, req *dto.TransactionRequest, _ *models.Transaction,
) (map[string]string, error) {
	errs := make(map[string]string)

	if req.Amount.IsZero() {
		errs["amount"] = ZeroAmountMessage
	}

	var count int64

	err := tx.Model(&models.Account{}).
		Where(models.OwnerColumn+" = ? AND id = ?", ownerID, req.AccountID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count == 0 {
		errs["accountId"] = AccountNotFoundMessage
	}

	return errs, nil
}
