package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/featured"
	"github.com/mmcdole/marquee/internal/playback"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogLoadedMsg signals that the now-playing listing and genres arrived
type CatalogLoadedMsg struct {
	Titles []domain.Title
	Genres domain.GenreSet
}

// CatalogErrMsg signals that the required listing fetch failed
type CatalogErrMsg struct {
	Err error
}

// HeroEnrichedMsg carries the enriched hero for a featured title. Stale
// results never produce this message.
type HeroEnrichedMsg struct {
	Hero featured.Hero
}

// PlaybackChangedMsg carries one playback state transition
type PlaybackChangedMsg struct {
	Change playback.Change
}

// TickMsg is sent periodically for spinner animation
type TickMsg struct{}

// AutoScrollTickMsg drives hover auto-scroll. Seq ties it to the scroll
// run that scheduled it so ticks from a stopped run are ignored.
type AutoScrollTickMsg struct {
	Seq int
}

// StatusMsg shows a transient message in the footer
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}

// LinkOpenedMsg signals the outcome of opening a booking link
type LinkOpenedMsg struct {
	Name string
	URL  string
	Err  error
}
