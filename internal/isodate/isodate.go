// Package isodate provides the UTC timestamp formatting every item's
// dateCreated field uses. The original Python package this pipeline is
// ported from has its own esiutils.isodate helper with the same contract;
// Go's time package already formats RFC3339 timestamps directly, so this
// package is a thin, explicitly-named wrapper rather than a reimplementation.
package isodate

import "time"

// NowUTCTimestamp returns the current time as a UTC RFC3339 timestamp, e.g.
// "2020-06-05T13:23:00Z".
func NowUTCTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// AsUTCTimestamp formats t as a UTC RFC3339 timestamp.
func AsUTCTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
