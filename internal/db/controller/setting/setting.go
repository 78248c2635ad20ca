// Package setting manages the global settings catalog.
package setting

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"

	// MaxNameLength is the longest accepted catalog setting name.
	MaxNameLength = 64
	// MaxDefaultValueLength is the longest accepted default value.
	MaxDefaultValueLength = 128
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to create/update a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrSettingNameTooLong is returned when the name exceeds MaxNameLength.
	ErrSettingNameTooLong = errors.New("setting name is too long")
	// ErrDefaultValueTooLong is returned when the default value exceeds MaxDefaultValueLength.
	ErrDefaultValueTooLong = errors.New("setting default value is too long")
	// ErrInvalidDefaultValue is returned when the default value does not convert to the setting type.
	ErrInvalidDefaultValue = errors.New("setting default value does not match its type")
	// ErrUnknownTypeCode is returned for a type code not in models.TypeCodes.
	ErrUnknownTypeCode = errors.New("unknown setting type")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a catalog setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting

	if err := db.Where(nameQueryPattern, name).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, err
	}

	return &setting, nil
}

// GetAll retrieves the whole catalog ordered by name.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	if err := db.Order("name").Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

// Create adds a setting to the catalog.
func Create(db *gorm.DB, name string, typeCode models.TypeCode, defaultValue *string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := check(name, typeCode, defaultValue); err != nil {
		return nil, err
	}

	_, err := Get(db, name)
	if err == nil {
		return nil, ErrSettingAlreadyExists
	}

	if !errors.Is(err, ErrSettingNotFound) {
		return nil, err
	}

	setting := &models.Setting{
		Name:         name,
		TypeCode:     typeCode,
		DefaultValue: defaultValue,
	}

	if err = db.Create(setting).Error; err != nil {
		return nil, err
	}

	return setting, nil
}

// Ensure creates the setting unless a setting with that name exists already.
// Existing settings are left untouched.
func Ensure(db *gorm.DB, name string, typeCode models.TypeCode, defaultValue *string) (bool, error) {
	_, err := Create(db, name, typeCode, defaultValue)
	if errors.Is(err, ErrSettingAlreadyExists) {
		return false, nil
	}

	return err == nil, err
}

// Update changes type and default value of an existing setting.
func Update(db *gorm.DB, name string, typeCode models.TypeCode, defaultValue *string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := check(name, typeCode, defaultValue); err != nil {
		return nil, err
	}

	setting, err := Get(db, name)
	if err != nil {
		return nil, err
	}

	setting.TypeCode = typeCode
	setting.DefaultValue = defaultValue

	if err = db.Save(setting).Error; err != nil {
		return nil, err
	}

	return setting, nil
}

// Delete removes a setting from the catalog together with every user's stored value for it.
func Delete(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}

	if name == "" {
		return ErrSettingNameEmpty
	}

	return db.Transaction(func(tx *gorm.DB) error {
		setting, err := Get(tx, name)
		if err != nil {
			return err
		}

		if err = tx.Where("setting_id = ?", setting.ID).Delete(&models.UserSetting{}).Error; err != nil {
			return err
		}

		result := tx.Delete(setting)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrSettingNotFound
		}

		return nil
	})
}

func check(name string, typeCode models.TypeCode, defaultValue *string) error {
	if name == "" {
		return ErrSettingNameEmpty
	}

	if len([]rune(name)) > MaxNameLength {
		return ErrSettingNameTooLong
	}

	if _, ok := models.ParseTypeCode(string(typeCode)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTypeCode, typeCode)
	}

	if defaultValue == nil {
		return nil
	}

	if len([]rune(*defaultValue)) > MaxDefaultValueLength {
		return ErrDefaultValueTooLong
	}

	if !typeCode.IsValid(*defaultValue) {
		return ErrInvalidDefaultValue
	}

	return nil
}
