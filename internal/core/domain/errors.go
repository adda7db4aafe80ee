package domain

import (
	"errors"
	"fmt"
)

// Root categories. Specific errors wrap one of these so callers can match
// either the precise failure or its category with errors.Is.
var (
	ErrAuthFailed   = errors.New("authentication failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("store unavailable")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthFailed)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrAuthFailed)
	ErrTokenRevoked       = fmt.Errorf("%w: token revoked", ErrAuthFailed)
)
