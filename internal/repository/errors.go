package repository

import "errors"

var (
	// ErrAuthCodeInvalid is returned when a code is unknown or already used
	ErrAuthCodeInvalid = errors.New("auth code is invalid or already used")

	// ErrUsernameTaken is returned when registering an existing username
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMakerNotFound is returned when an operation names an unknown maker
	ErrMakerNotFound = errors.New("maker not found")

	// ErrProjectNotFound is returned when a team names an unknown project
	ErrProjectNotFound = errors.New("project not found")
)
