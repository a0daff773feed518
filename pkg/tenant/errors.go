package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when the backend affirmatively has no
	// tenant for an identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrResolutionFailed wraps transport or protocol failures while
	// calling the backend resolution API.
	ErrResolutionFailed = errors.New("tenant resolution request failed")

	// ErrNoTenantInContext is returned when a required tenant is missing
	// from the request context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrBulkFetchUnsupported is returned when a bulk tenant load is
	// attempted outside gateway mode.
	ErrBulkFetchUnsupported = errors.New("bulk tenant fetch requires gateway mode")

	// ErrInvalidResponse is returned when the backend body cannot be
	// decoded into the expected wire shape.
	ErrInvalidResponse = errors.New("invalid tenant response body")
)
