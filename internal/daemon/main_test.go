package daemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finansync/finansync-api/internal/auth"
	"github.com/finansync/finansync-api/internal/config"
	settingctl "github.com/finansync/finansync-api/internal/db/controller/setting"
	"github.com/finansync/finansync-api/internal/db/models"
)

func ptr(s string) *string {
	return &s
}

func newTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Title = "finansync-test"
	cfg.DB = config.DB{GormEngine: config.EngineSQLite, Name: ":memory:"}
	cfg.Webserver.URL = "http://localhost"
	cfg.Webserver.Port = 8080
	cfg.Authentication.Bearer.TokenSecret = "a-test-secret-of-reasonable-length"
	cfg.Seed = config.Seed{
		AdminUserName: "admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "changeme",
		Settings: []config.SeedSetting{
			{Name: "theme", Type: "string", DefaultValue: ptr("light")},
			{Name: "maxItems", Type: "int32", DefaultValue: ptr("10")},
			{Name: "nickname", Type: "string"},
		},
	}

	return &cfg
}

func TestNew(t *testing.T) {
	d, err := New(newTestConfig())
	require.NoError(t, err)
	require.NotNil(t, d.Web())

	settings, err := settingctl.GetAll(d.db)
	require.NoError(t, err)
	assert.Len(t, settings, 3)

	user, err := auth.NewLocalProvider(d.db).Authenticate(context.Background(), "admin", "changeme")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
}

func TestNewNilConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNewUnknownEngine(t *testing.T) {
	cfg := newTestConfig()
	cfg.DB.GormEngine = "oracle"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	d, err := New(cfg)
	require.NoError(t, err)

	// a changed default does not overwrite the existing catalog entry
	cfg.Seed.Settings[0].DefaultValue = ptr("dark")
	cfg.Seed.AdminPassword = "other"
	require.NoError(t, seed(ctx, cfg, d.db))

	theme, err := settingctl.Get(d.db, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", theme.Default())

	var users int64
	require.NoError(t, d.db.Model(&models.AppUser{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestSeedRejectsInvalidSettings(t *testing.T) {
	ctx := context.Background()

	d, err := New(newTestConfig())
	require.NoError(t, err)

	tests := []struct {
		name    string
		setting config.SeedSetting
		wantErr error
	}{
		{
			name:    "unknown type",
			setting: config.SeedSetting{Name: "color", Type: "colour"},
			wantErr: settingctl.ErrUnknownTypeCode,
		},
		{
			name:    "default of wrong type",
			setting: config.SeedSetting{Name: "limit", Type: "int16", DefaultValue: ptr("lots")},
			wantErr: settingctl.ErrInvalidDefaultValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.Seed.Settings = []config.SeedSetting{tt.setting}

			require.ErrorIs(t, seed(ctx, cfg, d.db), tt.wantErr)
		})
	}
}
