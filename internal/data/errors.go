package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrJobNotFound is returned when updating a job that does not exist.
	ErrJobNotFound = errors.New("job not found")
)
