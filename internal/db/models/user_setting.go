package models

// UserSetting is a user's stored value for a catalog setting.
type UserSetting struct {
	AppUserID string   `gorm:"primaryKey;size:36"`
	SettingID string   `gorm:"primaryKey;size:36"`
	Setting   *Setting `gorm:"foreignKey:SettingID;constraint:OnDelete:CASCADE"`
	Value     string   `gorm:"size:256;not null"`
}
