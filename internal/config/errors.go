package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyTokenSecret error if no bearer token secret is configured.
	ErrEmptyTokenSecret = errors.New("toml config authentication.bearer.tokenSecret can not be empty")

	// ErrUnsupportedSigningMethod error if the bearer signing method is not an HMAC method.
	ErrUnsupportedSigningMethod = errors.New("toml config authentication.bearer.signingMethod must be HS256, HS384 or HS512")
)
