package domain

import "errors"

var (
	// ErrValidation is the root of every input validation failure.
	// Specific sentinels wrap it so callers can match the whole class
	// with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrStoreUnavailable reports that the durable store could not be
	// reached or rejected a write. Toggle callers treat it as transient.
	ErrStoreUnavailable = errors.New("persistence unavailable")
)
