// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON holds a JSON document overriding values of main.toml.
	EnvConfigJSON = "FINANSYNC_CONFIG_JSON"

	// DefaultSigningMethod is used when Authentication.Bearer.SigningMethod is empty.
	DefaultSigningMethod = "HS256"

	defaultShutDownTime = 5
)

// Default returns a config holding the values applied before main.toml is decoded.
func Default() Config {
	return Config{
		Authentication: Authentication{
			Bearer: JwtBearer{
				TokenExpirationMinutes: -1,
				SigningMethod:          DefaultSigningMethod,
			},
		},
		Webserver: Webserver{
			ShutDownTime: defaultShutDownTime,
		},
	}
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c   = Default()
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if envJSON := os.Getenv(EnvConfigJSON); envJSON != "" {
		c, err = decodeAndMergeConfig(c, envJSON)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	if err := json.Unmarshal([]byte(configAsJSON), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	bearer := &c.Authentication.Bearer

	if bearer.TokenSecret == "" {
		return errors.Wrap(ErrEmptyTokenSecret, invalidErrMessage)
	}

	if bearer.SigningMethod == "" {
		bearer.SigningMethod = DefaultSigningMethod
	}

	if _, ok := jwt.GetSigningMethod(bearer.SigningMethod).(*jwt.SigningMethodHMAC); !ok {
		return errors.Wrapf(ErrUnsupportedSigningMethod, "%s: %q", invalidErrMessage, bearer.SigningMethod)
	}

	return nil
}
