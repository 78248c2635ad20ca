package dto

import "github.com/finansync/finansync-api/internal/db/models"

// SettingRequest sets the value of the catalog setting Name.
type SettingRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Value string `json:"value" validate:"required,max=200"`
}

// SettingResponse is a user's value of a catalog setting.
type SettingResponse struct {
	Name         string          `json:"name"`
	TypeCode     models.TypeCode `json:"typeCode"`
	Value        string          `json:"value"`
	DefaultValue *string         `json:"defaultValue"`
}

// NewSettingResponse maps a stored override joined with its catalog entry.
func NewSettingResponse(us *models.UserSetting) SettingResponse {
	resp := SettingResponse{Value: us.Value}

	if us.Setting != nil {
		resp.Name = us.Setting.Name
		resp.TypeCode = us.Setting.TypeCode
		resp.DefaultValue = us.Setting.DefaultValue
	}

	return resp
}

// NewSettingResponses maps every override in order.
func NewSettingResponses(settings []models.UserSetting) []SettingResponse {
	out := make([]SettingResponse, 0, len(settings))
	for i := range settings {
		out = append(out, NewSettingResponse(&settings[i]))
	}

	return out
}
