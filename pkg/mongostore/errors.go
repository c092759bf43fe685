package mongostore

import "errors"

// Package-specific errors.
var (
	// ErrFailedToConnect is returned when all connection attempts fail.
	ErrFailedToConnect = errors.New("mongostore.failed_to_connect")

	// ErrQueryFailed wraps any query-level failure.
	ErrQueryFailed = errors.New("mongostore.query_failed")
)
