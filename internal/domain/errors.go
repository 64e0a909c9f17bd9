package domain

import "errors"

// Sentinel errors for catalog and configuration operations
var (
	// ErrRemoteUnavailable indicates a required catalog fetch (now-playing
	// listing or per-title details) failed with a transport error or non-2xx status
	ErrRemoteUnavailable = errors.New("catalog is unavailable")

	// ErrEnrichmentUnavailable indicates an optional fetch (genres, trailer)
	// failed. Callers degrade to empty results and never surface it.
	ErrEnrichmentUnavailable = errors.New("catalog enrichment is unavailable")

	// ErrNotConfigured indicates no catalog API key has been configured
	ErrNotConfigured = errors.New("catalog API key is not configured")
)
