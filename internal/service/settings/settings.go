// Package settings reconciles a user's stored setting values with the
// global settings catalog.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	settingctl "github.com/finansync/finansync-api/internal/db/controller/setting"
	"github.com/finansync/finansync-api/internal/db/models"
	"github.com/finansync/finansync-api/internal/dto"
	"github.com/finansync/finansync-api/internal/result"
)

// InvalidValueTypeMessage is reported for values that do not convert to the setting type.
const InvalidValueTypeMessage = "Invalid value type."

var (
	// ErrInvalidUserID is returned when the user does not exist.
	ErrInvalidUserID = errors.New("invalid user id")

	errSaveFailed = errors.New("save failed")
)

// Service reconciles user settings.
type Service struct {
	db *gorm.DB
}

// New creates a settings service.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetAll returns a value for every catalog setting. Settings the user has
// no stored value for yet are created with the catalog default.
func (s *Service) GetAll(ctx context.Context, userID string) ([]dto.SettingResponse, error) {
	var out []dto.SettingResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}

		catalog, err := settingctl.GetAll(tx)
		if err != nil {
			return err
		}

		stored := make(map[string]struct{}, len(user.Settings))
		for _, us := range user.Settings {
			stored[us.SettingID] = struct{}{}
		}

		var missing []models.UserSetting

		for i := range catalog {
			if _, ok := stored[catalog[i].ID]; ok {
				continue
			}

			missing = append(missing, models.UserSetting{
				AppUserID: user.ID,
				SettingID: catalog[i].ID,
				Setting:   &catalog[i],
				Value:     catalog[i].Default(),
			})
		}

		if len(missing) > 0 {
			if err = tx.Omit(clause.Associations).Create(&missing).Error; err != nil {
				return err
			}

			user.Settings = append(user.Settings, missing...)
		}

		out = dto.NewSettingResponses(user.Settings)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetDefined returns the values the user has stored, without creating missing ones.
func (s *Service) GetDefined(ctx context.Context, userID string) ([]dto.SettingResponse, error) {
	stored, err := loadStored(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	return dto.NewSettingResponses(stored), nil
}

// Set stores the requested values. Names missing in the catalog are ignored.
//
// Every value is checked against the type of its setting and failures are
// collected keyed by setting name. Once a value failed, no later request is
// applied, but values applied before the failure are kept.
func (s *Service) Set(
	ctx context.Context, userID string, requests []dto.SettingRequest,
) (result.Result[[]dto.SettingResponse], error) {
	var (
		errs = make(map[string]string)
		out  []dto.SettingResponse
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}

		catalog, err := settingctl.GetAll(tx)
		if err != nil {
			return err
		}

		byName := make(map[string]*models.Setting, len(catalog))
		for i := range catalog {
			byName[catalog[i].Name] = &catalog[i]
		}

		var (
			changed []*models.UserSetting
			created []models.UserSetting
		)

		for _, req := range requests {
			def, ok := byName[req.Name]
			if !ok {
				continue
			}

			if !def.TypeCode.IsValid(req.Value) {
				errs[req.Name] = InvalidValueTypeMessage
			}

			if len(errs) > 0 {
				continue
			}

			if us := findStored(user.Settings, def.ID); us != nil {
				us.Value = req.Value
				changed = append(changed, us)

				continue
			}

			user.Settings = append(user.Settings, models.UserSetting{
				AppUserID: user.ID,
				SettingID: def.ID,
				Setting:   def,
				Value:     req.Value,
			})
			created = append(created, user.Settings[len(user.Settings)-1])
		}

		if err = saveValues(tx, changed, created); err != nil {
			log.Error().Err(err).Str("user", userID).Msg("failed to store setting values")
			return errSaveFailed
		}

		out = dto.NewSettingResponses(user.Settings)

		return nil
	})

	switch {
	case errors.Is(err, errSaveFailed) && ctx.Err() == nil:
		return result.Fail[[]dto.SettingResponse](result.DatabaseError, "Failed to save settings."), nil
	case err != nil:
		return result.Result[[]dto.SettingResponse]{}, err
	case len(errs) > 0:
		return result.FailWith[[]dto.SettingResponse](errs, result.ValidationError), nil
	default:
		return result.Success(out), nil
	}
}

// Reset sets every stored value back to its catalog default and returns the stored values.
func (s *Service) Reset(ctx context.Context, userID string) (result.Result[[]dto.SettingResponse], error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := loadStored(tx, userID)
		if err != nil {
			return err
		}

		changed := make([]*models.UserSetting, 0, len(stored))
		for i := range stored {
			stored[i].Value = stored[i].Setting.Default()
			changed = append(changed, &stored[i])
		}

		if err = saveValues(tx, changed, nil); err != nil {
			log.Error().Err(err).Str("user", userID).Msg("failed to reset setting values")
			return errSaveFailed
		}

		return nil
	})

	switch {
	case errors.Is(err, errSaveFailed) && ctx.Err() == nil:
		return result.Fail[[]dto.SettingResponse](result.DatabaseError, "Failed to reset settings."), nil
	case err != nil:
		return result.Result[[]dto.SettingResponse]{}, err
	}

	defined, err := s.GetDefined(ctx, userID)
	if err != nil {
		return result.Result[[]dto.SettingResponse]{}, err
	}

	return result.Success(defined), nil
}

func loadUser(tx *gorm.DB, userID string) (*models.AppUser, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	var user models.AppUser

	err := tx.Preload("Settings", func(db *gorm.DB) *gorm.DB {
		return db.Order("setting_id")
	}).Preload("Settings.Setting").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUserID, userID)
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func loadStored(tx *gorm.DB, userID string) ([]models.UserSetting, error) {
	stored := []models.UserSetting{}

	err := tx.Preload("Setting").
		Where(models.OwnerColumn+" = ?", userID).
		Order("setting_id").
		Find(&stored).Error
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func findStored(stored []models.UserSetting, settingID string) *models.UserSetting {
	for i := range stored {
		if stored[i].SettingID == settingID {
			return &stored[i]
		}
	}

	return nil
}

// saveValues inserts created before applying changed, a value may be created
// and changed again within the same batch.
func saveValues(tx *gorm.DB, changed []*models.UserSetting, created []models.UserSetting) error {
	if len(created) > 0 {
		if err := tx.Omit(clause.Associations).Create(&created).Error; err != nil {
			return err
		}
	}

	for _, us := range changed {
		err := tx.Model(&models.UserSetting{}).
			Where(models.OwnerColumn+" = ? AND setting_id = ?", us.AppUserID, us.SettingID).
			Update("value", us.Value).Error
		if err != nil {
			return err
		}
	}

	return nil
}
