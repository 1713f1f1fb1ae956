package domain

import "errors"

// Validation errors are rejected before any state mutation. Reference
// resolution misses are deliberately NOT errors: the engine degrades to
// placeholder values and still commits the mutation.
var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyDescription = errors.New("description cannot be empty")
)
