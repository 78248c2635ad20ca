package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configDir(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(configDir(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)

	bearer := cfg.Authentication.Bearer
	assert.NotEmpty(t, bearer.TokenSecret)
	assert.Equal(t, 60, bearer.TokenExpirationMinutes)
	assert.Equal(t, "HS256", bearer.SigningMethod)

	require.NotEmpty(t, cfg.Seed.Settings)

	names := make([]string, 0, len(cfg.Seed.Settings))
	for _, s := range cfg.Seed.Settings {
		names = append(names, s.Name)
	}

	assert.Contains(t, names, "theme")
	assert.Contains(t, names, "maxItems")
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		c := Default()
		c.Webserver.Port = 8080
		c.Webserver.URL = "http://localhost:8080"
		c.Authentication.Bearer.TokenSecret = "secret"

		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Webserver.Port = 0 },
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:    "missing URL",
			mutate:  func(c *Config) { c.Webserver.URL = "" },
			wantErr: ErrEmptyURL,
		},
		{
			name:    "missing token secret",
			mutate:  func(c *Config) { c.Authentication.Bearer.TokenSecret = "" },
			wantErr: ErrEmptyTokenSecret,
		},
		{
			name:    "asymmetric signing method",
			mutate:  func(c *Config) { c.Authentication.Bearer.SigningMethod = "RS256" },
			wantErr: ErrUnsupportedSigningMethod,
		},
		{
			name:    "unknown signing method",
			mutate:  func(c *Config) { c.Authentication.Bearer.SigningMethod = "nope" },
			wantErr: ErrUnsupportedSigningMethod,
		},
		{
			name:   "empty signing method falls back to default",
			mutate: func(c *Config) { c.Authentication.Bearer.SigningMethod = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := validate(&c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, c.Authentication.Bearer.SigningMethod)
			assert.NotZero(t, c.Webserver.ShutDownTime)
		})
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090},"Authentication":{"Bearer":{"TokenExpirationMinutes":-1}}}`)

	cfg, err := ReadConfig(configDir(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, -1, cfg.Authentication.Bearer.TokenExpirationMinutes)
	// values not part of the override stay as read from main.toml
	assert.Equal(t, "finansync", cfg.Authentication.Bearer.Issuer)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(configDir(t))
	require.Error(t, err)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(tomlStr, "Test"))

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}
