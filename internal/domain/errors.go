package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the root of every domain validation error; the
	// specific errors below and in the entity files all wrap it so callers
	// can classify a failure with a single errors.Is check.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrInvalidPriority is returned when a task priority is not one of
	// LOW, MEDIUM or HIGH.
	ErrInvalidPriority = fmt.Errorf("%w: invalid task priority", ErrValidation)
)
