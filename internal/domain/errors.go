package domain

import "errors"

// The two business error kinds every core operation resolves to. Callers match
// them with errors.Is; anything else coming out of the store is unclassified
// and treated as fatal by the transport layer.
//
// Ownership and visibility failures are deliberately reported as ErrNotFound
// rather than a forbidden kind, so callers cannot probe which bookings exist.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)
