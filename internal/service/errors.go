package service

import "errors"

// Errors returned by [VaultService]. Callers match them with [errors.Is];
// the wrapped cause is meant for logs only.
var (
	ErrValidation     = errors.New("invalid input")
	ErrDuplicateUser  = errors.New("user already exists")
	ErrAuthentication = errors.New("authentication failed")
	ErrStorage        = errors.New("storage failure")
	ErrUserNotFound   = errors.New("user not found")
	ErrItemNotFound   = errors.New("item not found")
	ErrSessionActive  = errors.New("a session is already active")

	// ErrInternal reports a failure that is neither the caller's fault nor
	// the store's, such as the random source failing during registration.
	ErrInternal = errors.New("internal vault error")
)
