// Package common defines shared constants, sentinel errors and small helpers
// used across the client, the server and the stores. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Config errors.
	ErrorUnknownDriver = errors.New("unknown storage driver")
)
