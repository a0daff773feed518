package tenancy

import "errors"

var (
	// ErrInvalidConfig wraps startup configuration defects; they are
	// fatal at boot, never per-request.
	ErrInvalidConfig = errors.New("tenancy: invalid configuration")

	// ErrMissingAPIURL is returned when gateway mode is configured
	// without a backend base URL.
	ErrMissingAPIURL = errors.New("tenancy: gateway mode requires TENANCY_API_URL")

	// ErrMissingNotFoundHandler is returned when the custom not-found
	// policy is configured without a handler.
	ErrMissingNotFoundHandler = errors.New("tenancy: custom not-found policy requires a handler")
)
