package auth

import "errors"

var (
	// ErrInvalidOldPassword is returned when the provided old password does not match the user's current password.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUserNameOrEmailExists is returned when attempting to create a user with a username or email that already exists.
	ErrUserNameOrEmailExists = errors.New("user with username or email already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingUserData is returned when a user is created without user name, email or password.
	ErrMissingUserData = errors.New("user name, email and password are required")
)
