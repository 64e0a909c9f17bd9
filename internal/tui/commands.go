package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/featured"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/sourcegraph/conc"
)

// Command factories for async operations

// URLOpener opens an outbound link in the user's browser
type URLOpener interface {
	Open(rawURL string) error
}

// LoadCatalogCmd fetches genres and the now-playing listing concurrently.
// Only the listing is required; genres degrade to an empty set.
func LoadCatalogCmd(catalog domain.Catalog) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var (
			genres []domain.Genre
			titles []domain.Title
			err    error
		)
		var wg conc.WaitGroup
		wg.Go(func() {
			genres = catalog.FetchGenres(ctx)
		})
		wg.Go(func() {
			titles, err = catalog.FetchNowPlaying(ctx)
		})
		wg.Wait()

		if err != nil {
			return CatalogErrMsg{Err: err}
		}
		return CatalogLoadedMsg{Titles: titles, Genres: genres}
	}
}

// EnrichCmd loads details and the trailer for a featured title
func EnrichCmd(p *featured.Presenter, t domain.Title) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		hero, ok := p.Enrich(ctx, t)
		if !ok {
			return nil
		}
		return HeroEnrichedMsg{Hero: hero}
	}
}

// WaitForPlaybackCmd blocks for the next playback state change. The model
// reissues it after every PlaybackChangedMsg.
func WaitForPlaybackCmd(ch <-chan playback.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return PlaybackChangedMsg{Change: c}
	}
}

// OpenURLCmd opens a booking link without blocking the UI
func OpenURLCmd(opener URLOpener, name, url string) tea.Cmd {
	return func() tea.Msg {
		return LinkOpenedMsg{Name: name, URL: url, Err: opener.Open(url)}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// AutoScrollTickCmd schedules the next auto-scroll frame
func AutoScrollTickCmd(seq int) tea.Cmd {
	return tea.Tick(autoScrollFrame, func(time.Time) tea.Msg {
		return AutoScrollTickMsg{Seq: seq}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
