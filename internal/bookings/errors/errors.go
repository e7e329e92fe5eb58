package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrDuplicateReference = errors.New("booking reference already exists")

	// ErrStatusChanged means the stored status no longer matches the one the
	// write was conditioned on.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
