package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCenterNotFound     = errors.New("center not found")
	ErrEventNotFound      = errors.New("event not found")
	// ErrNotAuthorized means the caller is not the admin principal. It is
	// never retried and the target of the gated mutation stays untouched.
	ErrNotAuthorized = errors.New("caller is not authorized")
	ErrInvalidPoints = errors.New("point awards must be non-negative")
)
