package domain

import "context"

// Catalog is the read-only movie catalog the application is built on.
//
// FetchNowPlaying and FetchDetails fail with ErrRemoteUnavailable.
// FetchGenres and FetchTrailerKey never fail: they degrade to an empty
// result so that enrichment never blocks the rest of the screen.
type Catalog interface {
	FetchGenres(ctx context.Context) []Genre
	FetchNowPlaying(ctx context.Context) ([]Title, error)
	FetchDetails(ctx context.Context, id int) (Title, error)
	FetchTrailerKey(ctx context.Context, id int) (string, bool)
}
