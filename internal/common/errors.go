package common

import "errors"

// Sentinel errors for the failure taxonomy. Callers branch with errors.Is.
var (
	// ErrInvalidInput covers missing/empty uploads, disallowed extensions,
	// and missing required fields. Surfaced immediately, no partial effect.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers lookups scoped to an owner that match nothing.
	ErrNotFound = errors.New("not found")

	// ErrModelCall covers transport failures and timeouts of the external
	// model call. The whole operation fails; no automatic retry.
	ErrModelCall = errors.New("model call failed")

	// ErrMalformedResponse covers model output that is not valid JSON or
	// not the expected shape after fence stripping. Distinguishable from
	// ErrModelCall so callers can retry with a repair prompt.
	ErrMalformedResponse = errors.New("malformed model response")
)
