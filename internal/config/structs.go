package config

import (
	"github.com/finansync/finansync-api/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode        bool // enable dev mode for development
	DB             DB
	Log            logger.Log
	Title          string
	Webserver      Webserver
	Authentication Authentication
	Seed           Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // seconds checkalive reports 503 before the server stops
	URL            string // base url for the webserver
	BodyLimit      int    // max request body size in bytes, fiber default if 0
}

// Authentication groups the authentication settings.
type Authentication struct {
	Bearer JwtBearer
}

// JwtBearer holds the settings used to issue and verify bearer tokens.
type JwtBearer struct {
	TokenSecret string
	// TokenExpirationMinutes is the lifetime of an issued token. Negative means it never expires.
	TokenExpirationMinutes int
	Issuer                 string
	Audience               string
	SigningMethod          string // HS256, HS384 or HS512
}

// Seed is applied on start: catalog settings are created when missing,
// the admin user only when the user table is empty.
type Seed struct {
	AdminUserName string
	AdminEmail    string
	AdminPassword string
	Settings      []SeedSetting
}

// SeedSetting describes one catalog setting.
type SeedSetting struct {
	Name         string
	Type         string
	DefaultValue *string
}
