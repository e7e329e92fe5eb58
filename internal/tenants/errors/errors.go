package errors

import "errors"

var (
	ErrNotFound = errors.New("tenant not found")

	ErrInvalidID = errors.New("invalid tenant ID format")

	ErrDuplicateTenantID = errors.New("tenant_id already exists")
)
