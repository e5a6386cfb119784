package store

import "errors"

var (
	// ErrDuplicateUsername is returned by Register when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials covers unknown users, wrong passwords and inactive accounts alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrUserNotFound       = errors.New("user not found")
)
