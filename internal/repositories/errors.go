package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Callers
// match them with errors.Is after %w wrapping.
var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("record already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)
