package session

import "errors"

var (
	// ErrMissingCapability indicates the host provides no orientation source.
	ErrMissingCapability = errors.New("session: orientation events unsupported")

	// ErrPermissionDenied indicates the gate resolved to a non-grant outcome.
	ErrPermissionDenied = errors.New("session: orientation permission denied")
)
