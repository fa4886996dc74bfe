// Package common defines shared constants and sentinel errors used across
// the BioPortal backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorConflict      = errors.New("conflict")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Authentication errors.
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrMissingToken     = errors.New("missing token")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrUnknownPrincipal = errors.New("unknown principal")

	// Authorization errors.
	ErrorForbidden = errors.New("forbidden")

	// Account lifecycle errors.
	ErrorNotApproved = errors.New("account is not approved")
	ErrorIDExhausted = errors.New("too many id generation attempts")
)
