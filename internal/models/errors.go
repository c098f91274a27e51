package models

import "errors"

// Error kinds shared across the dataset and service layers. Callers
// classify failures with errors.Is after unwrapping.
var (
	// ErrInvalidInput marks a caller mistake: bad serving count,
	// malformed filter value, out-of-range rating.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataIntegrity marks a malformed dataset record.
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrServiceUnavailable marks the generation collaborator as
	// unconfigured or unreachable; callers fall back to the local
	// dataset pipeline.
	ErrServiceUnavailable = errors.New("service unavailable")
)
