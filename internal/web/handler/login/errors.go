// Package login provides the HTTP handler issuing bearer tokens for local users.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted credentials cannot be parsed.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrInvalidCredentials is returned when the provided username and/or password
	// are not valid.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
