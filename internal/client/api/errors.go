package api

import "errors"

var (
	// ErrUnavailable means the request never produced an HTTP response
	// (connection refused, timeout, DNS failure).
	ErrUnavailable = errors.New("server unavailable")
)
