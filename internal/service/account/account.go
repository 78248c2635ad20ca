// Package account implements the owner scoped CRUD of financial accounts.
package account

import (
	"context"

	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/db/models"
	"github.com/finansync/finansync-api/internal/dto"
	"github.com/finansync/finansync-api/internal/service/entity"
	"github.com/finansync/finansync-api/internal/validation"
)

// DuplicateNameMessage is reported when the owner already has an account with the requested name.
const DuplicateNameMessage = "An account with this name already exists."

// Service is the account CRUD service.
type Service = entity.Service[models.Account, dto.AccountRequest, dto.AccountResponse]

// Kind implements entity.Kind for accounts.
type Kind struct {
	entity.Base[models.Account]
}

// New creates the account service.
func New(db *gorm.DB, v *validation.Validator) *Service {
	return entity.New[models.Account, dto.AccountRequest, dto.AccountResponse](db, v, Kind{})
}

// CascadeQuery loads the transactions that are deleted with the account.
func (Kind) CascadeQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.Account{}).Preload("Transactions")
}

// MapForCreate implements entity.Kind.
func (Kind) MapForCreate(ownerID string, req *dto.AccountRequest) *models.Account {
	a := &models.Account{
		Name:        req.Name,
		Currency:    req.Currency,
		Balance:     req.Balance,
		Description: req.Description,
	}
	a.AppUserID = ownerID

	return a
}

// MapForUpdate implements entity.Kind.
func (Kind) MapForUpdate(req *dto.AccountRequest, current *models.Account) {
	current.Name = req.Name
	current.Currency = req.Currency
	current.Balance = req.Balance
	current.Description = req.Description
}

// ToRequest implements entity.Kind.
func (Kind) ToRequest(current *models.Account) dto.AccountRequest {
	return dto.AccountRequest{
		Name:        current.Name,
		Currency:    current.Currency,
		Balance:     current.Balance,
		Description: current.Description,
	}
}

// ToResponse implements entity.Kind.
func (Kind) ToResponse(a *models.Account) dto.AccountResponse {
	return dto.NewAccountResponse(a)
}

// ValidateDomain rejects names the owner already uses for another account.
func (Kind) ValidateDomain(
	_ context.Context, tx *gorm.DB, ownerID string, req *dto.AccountRequest, original *models.Account,
) (map[string]string, error) {
	q := tx.Model(&models.Account{}).Where(models.OwnerColumn+" = ? AND name = ?", ownerID, req.Name)
	if original != nil {
		q = q.Where("id <> ?", original.ID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return map[string]string{"name": DuplicateNameMessage}, nil
	}

	return nil, nil
}
