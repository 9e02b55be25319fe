// Package common defines shared constants and sentinel errors used across
// the Amparo client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. ErrorUnauthorized covers both rejected credentials and an
	// expired/invalid bearer token (HTTP 401 on any authenticated call).
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors caught before any network call.
	ErrorValidation = errors.New("validation error")
)
