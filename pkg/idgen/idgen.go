// Package idgen provides ID generation utilities for the application.
// Item identifiers (the content-addressable hashes described by the
// identity model) are never generated here - see internal/identity. This
// package only mints short-lived correlation IDs used for request tracing.
package idgen

import "github.com/rs/xid"

// NewRequestID generates a unique, sortable, URL-safe ID for correlating the
// log lines and trace spans emitted while handling a single incoming HTTP
// review request.
func NewRequestID() string {
	return xid.New().String()
}
