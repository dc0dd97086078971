package errors

import (
	"errors"
	"fmt"
)

// Common error types for the floor-plan server
var (
	// Signed-request errors
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrStaleTimestamp   = errors.New("stale timestamp")

	// Tenant errors
	ErrUnknownCompany = errors.New("company not found")

	// Upstream platform errors
	ErrUpstreamAuth = errors.New("upstream authentication failed")

	// Session errors
	ErrTokenIssuance  = errors.New("token issuance failed")
	ErrInvalidSession = errors.New("invalid session token")
	ErrSessionExpired = errors.New("session token expired")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
