package core

import (
	"errors"
	"fmt"
)

// Authentication Related Errors
var (
	ErrMissingField       = errors.New("required field missing")    // 400 Bad Request
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 Unauthorized
	ErrUserNotFound       = errors.New("user not found")            // folded into ErrInvalidCredentials
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found") // 401
	ErrSessionExpired  = errors.New("session expired")   // 401
)

// Storage errors
var (
	ErrStorageUnavailable = errors.New("session storage unavailable") // 503
	ErrStorageCorrupt     = errors.New("stored session is malformed")
	ErrItemNotFound       = errors.New("item not found")
	ErrQuotaExceeded      = errors.New("storage quota exceeded")
)

// Authorization errors
var (
	ErrPermissionDenied = errors.New("permission denied")           // 403
	ErrEventNotFound    = errors.New("event not found")             // 404
	ErrEventNotPending  = errors.New("event is not pending review") // 409
	ErrReasonRequired   = fmt.Errorf("%w: rejection reason", ErrMissingField)
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("storage adapter is required") // 500
	ErrInvalidMaxAge   = errors.New("session max age must be positive")
	ErrInvalidRole     = errors.New("invalid role")
)
