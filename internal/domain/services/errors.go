// Package services implements the event data pipeline: caching, fetching,
// curation and local-time conversion.
package services

import "errors"

var (
	// ErrDataUnavailable is returned when the event source failed and no
	// cached record exists to fall back on.
	ErrDataUnavailable = errors.New("event data unavailable")

	// ErrParseFailure is returned when an instant or JSON payload is malformed.
	ErrParseFailure = errors.New("parse failure")
)
