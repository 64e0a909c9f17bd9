// Package featured promotes one title to the hero panel: it shows the
// summary at once, enriches it from the catalog, and owns the hero's
// playback session.
package featured

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/card"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/sourcegraph/conc"
)

// Placeholder texts for the hero panel
const (
	NoOverview          = "설명이 없습니다."
	OverviewUnavailable = "설명을 불러올 수 없습니다."
	NoTrailer           = "트레일러가 없습니다"
)

// Hero is the rendered hero panel
type Hero struct {
	Title       domain.Title
	Name        string
	Rating      string
	Overview    string
	Date        string
	BackdropURL string
	TrailerKey  string
	TrailerURL  string
	// TrailerStatus is shown in place of the player, empty while a
	// trailer is available.
	TrailerStatus string
	Loading       bool
	DetailFailed  bool
}

// HasTrailer reports whether a trailer key was resolved
func (h Hero) HasTrailer() bool { return h.TrailerKey != "" }

// Presenter owns the featured selection and its playback session
type Presenter struct {
	catalog domain.Catalog
	images  card.Images
	boot    *playback.Bootstrap
	logger  *slog.Logger

	mu        sync.Mutex
	gen       uint64
	current   domain.Title
	featured  bool
	hero      Hero
	session   *playback.Session
	suspended bool
}

// New creates a Presenter. boot may be nil or disabled, in which case
// heroes carry only the trailer URL.
func New(catalog domain.Catalog, images card.Images, boot *playback.Bootstrap, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{catalog: catalog, images: images, boot: boot, logger: logger}
}

// IsFeatured reports whether id is the current selection. Selecting it
// again is a no-op apart from scrolling back to it.
func (p *Presenter) IsFeatured(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.featured && p.current.ID == id
}

// Current returns the featured title
func (p *Presenter) Current() (domain.Title, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.featured
}

// Hero returns the latest hero panel
func (p *Presenter) Hero() Hero {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hero
}

// Session returns the hero's playback session, if any
func (p *Presenter) Session() *playback.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Present features t and blocks until enrichment completes
func (p *Presenter) Present(ctx context.Context, t domain.Title) Hero {
	p.Summary(t)
	hero, _ := p.Enrich(ctx, t)
	return hero
}

// Summary makes t the featured title and returns the immediate hero built
// from summary data. Any active playback session is torn down first.
func (p *Presenter) Summary(t domain.Title) Hero {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.disposeSession()
	p.gen++
	p.current = t
	p.featured = true

	c := p.images.Render(t, nil)
	p.hero = Hero{
		Title:   t,
		Name:    c.Title,
		Rating:  c.Rating,
		Loading: true,
	}
	return p.hero
}

// Enrich fetches details and the trailer key concurrently and joins them.
// Each fetch falls back independently. The bool is false when a newer
// Summary has superseded t, in which case nothing is changed.
func (p *Presenter) Enrich(ctx context.Context, t domain.Title) (Hero, bool) {
	p.mu.Lock()
	gen := p.gen
	stale := !p.featured || p.current.ID != t.ID
	p.mu.Unlock()
	if stale {
		return Hero{}, false
	}

	var (
		detail    domain.Title
		detailErr error
		key       string
		hasKey    bool
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		detail, detailErr = p.catalog.FetchDetails(ctx, t.ID)
	})
	wg.Go(func() {
		key, hasKey = p.catalog.FetchTrailerKey(ctx, t.ID)
	})
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		p.logger.Debug("discarding stale enrichment", "id", t.ID)
		return Hero{}, false
	}

	hero := p.hero
	hero.Loading = false

	if detailErr != nil {
		p.logger.Warn("detail fetch failed, using summary", "id", t.ID, "error", detailErr)
		hero.DetailFailed = true
		hero.Overview = orDefault(t.Overview, OverviewUnavailable)
		hero.Date = card.FormatDate(t.ReleaseDate)
		hero.BackdropURL = p.backdrop(t)
	} else {
		merged := t.Merge(detail)
		hero.Title = merged
		hero.Overview = orDefault(merged.Overview, NoOverview)
		hero.Date = card.FormatDate(merged.ReleaseDate)
		hero.BackdropURL = p.backdrop(merged)
	}

	if hasKey {
		hero.TrailerKey = key
		hero.TrailerURL = playback.WatchURL(key)
	} else {
		hero.TrailerStatus = NoTrailer
	}

	p.hero = hero
	if !p.suspended {
		p.startSession()
	}
	return hero, true
}

// Suspend stops the hero trailer while another view plays one
func (p *Presenter) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.suspended = true
	p.disposeSession()
}

// Resume restarts the hero trailer after Suspend
func (p *Presenter) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.suspended {
		return
	}
	p.suspended = false
	if !p.hero.Loading {
		p.startSession()
	}
}

// Gesture forwards a user interaction to the hero session
func (p *Presenter) Gesture() bool {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()
	if s == nil {
		return false
	}
	return s.Gesture()
}

// Close tears down the hero session
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disposeSession()
}

// Reset clears the selection, e.g. when the listing becomes empty
func (p *Presenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disposeSession()
	p.gen++
	p.current = domain.Title{}
	p.featured = false
	p.hero = Hero{}
}

func (p *Presenter) backdrop(t domain.Title) string {
	if t.BackdropPath != "" {
		return p.images.BackdropURL(t.BackdropPath)
	}
	if t.PosterPath != "" {
		return p.images.PosterURL(t.PosterPath)
	}
	return ""
}

// Caller holds mu.
func (p *Presenter) startSession() {
	p.disposeSession()
	if p.hero.TrailerKey == "" || !p.boot.Enabled() {
		return
	}
	p.session = p.boot.Start(p.hero.TrailerKey)
}

// Caller holds mu.
func (p *Presenter) disposeSession() {
	if p.session != nil {
		p.session.Dispose()
		p.session = nil
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
