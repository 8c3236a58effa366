package services

import (
	"errors"

	"foodnova/internal/repositories"
)

// Service-level sentinel errors. Handlers map them to HTTP statuses with
// errors.Is. The data-access sentinels are re-exported so handlers only
// ever import this package.
var (
	ErrNotFound          = repositories.ErrNotFound
	ErrConflict          = repositories.ErrConflict
	ErrInsufficientStock = repositories.ErrInsufficientStock

	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)
