package domain

import "time"

// ResponseCache stores per-title catalog responses between runs.
// Only details and video lists are cached; listings are always fetched fresh.
type ResponseCache interface {
	GetDetails(id int, maxAge time.Duration) (Title, bool)
	SaveDetails(title Title) error

	GetVideos(id int, maxAge time.Duration) ([]Video, bool)
	SaveVideos(id int, videos []Video) error

	InvalidateAll()
	Close() error
}
