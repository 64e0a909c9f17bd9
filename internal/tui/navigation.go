package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/card"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/listing"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// refreshListing re-derives the grid from the listing state and features
// the head of the new view.
func (m *Model) refreshListing() tea.Cmd {
	view := m.listing.DerivedView()
	cards := make([]card.Card, len(view))
	for i, t := range view {
		cards[i] = m.images.Render(t, m.genres)
	}
	m.Grid.SetCards(cards)
	m.Grid.SetTitle(m.sectionTitle())

	head, ok := m.listing.Head()
	if !ok {
		m.presenter.Reset()
		m.Grid.SetFeatured(0)
		m.syncHero()
		return m.kickScroll()
	}
	return tea.Batch(m.feature(head), m.kickScroll())
}

func (m Model) sectionTitle() string {
	title := m.listing.SortMode().Label()
	if id, ok := m.listing.GenreFilter().GenreID(); ok {
		if name, ok := m.genres.Name(id); ok {
			title += " · " + name
		}
	}
	return title
}

// feature promotes t to the hero. Featuring the current title again only
// brings its card back into view.
func (m *Model) feature(t domain.Title) tea.Cmd {
	if m.presenter.IsFeatured(t.ID) {
		m.Grid.SelectID(t.ID)
		return nil
	}
	m.presenter.Summary(t)
	m.Grid.SetFeatured(t.ID)
	m.syncHero()
	return EnrichCmd(m.presenter, t)
}

// featureID features the listing title with the given id
func (m *Model) featureID(id int) tea.Cmd {
	for _, t := range m.listing.All() {
		if t.ID == id {
			return m.feature(t)
		}
	}
	return nil
}

// syncHero copies the presenter's hero and session state into the panel
func (m *Model) syncHero() {
	m.Hero.SetHero(m.presenter.Hero())
	if s := m.presenter.Session(); s != nil {
		m.Hero.SetPlayback(s.State(), true)
	} else {
		m.Hero.SetPlayback(playback.StateIdle, false)
	}
}

// applyPlayback routes a state change to the view showing that session
func (m *Model) applyPlayback(c playback.Change) {
	if m.modalSession != nil && m.modalSession.ID() == c.SessionID {
		m.TrailerModal.SetPlayback(c.To, true)
		return
	}
	if s := m.presenter.Session(); s != nil && s.ID() == c.SessionID {
		m.Hero.SetPlayback(c.To, true)
	}
}

// forwardGesture hands a user interaction to the session in front
func (m *Model) forwardGesture() {
	if m.modalSession != nil {
		m.modalSession.Gesture()
		return
	}
	m.presenter.Gesture()
}

func (m *Model) setSortMode(mode listing.SortMode) tea.Cmd {
	m.listing.SetSortMode(mode)
	m.Tabs.SetActive(mode)
	return m.refreshListing()
}

func (m *Model) setGenre(opt components.GenreOption) tea.Cmd {
	m.listing.SetGenreFilter(opt.Filter)
	m.Tabs.SetGenreLabel(opt.Label)
	return m.refreshListing()
}

func (m *Model) openGenrePicker() {
	m.GenrePicker.SetOptions(components.GenreOptions(m.genres.Visible(m.excluded)))
	m.GenrePicker.Show(m.listing.GenreFilter())
}

// openTrailer shows the featured trailer in the modal. The hero session is
// suspended so only one trailer plays at a time.
func (m *Model) openTrailer() tea.Cmd {
	hero := m.Hero.Hero()
	if hero.Name == "" {
		return nil
	}
	if hero.Loading {
		return m.setStatus("트레일러를 확인하는 중입니다", false)
	}
	if !hero.HasTrailer() {
		m.TrailerModal.Show(hero.Name, "")
		return nil
	}

	m.presenter.Suspend()
	m.syncHero()
	m.TrailerModal.Show(hero.Name, hero.TrailerURL)
	m.modalSession = m.trailers.Start(hero.TrailerKey)
	if m.modalSession != nil {
		m.TrailerModal.SetPlayback(m.modalSession.State(), true)
	}
	return nil
}

func (m *Model) closeTrailer() {
	if m.modalSession != nil {
		m.modalSession.Dispose()
		m.modalSession = nil
	}
	m.TrailerModal.Hide()
	m.presenter.Resume()
	m.syncHero()
}

func (m *Model) openBooking() {
	name := m.Hero.Hero().Name
	if c, ok := m.Grid.Selected(); ok && name == "" {
		name = c.Title
	}
	m.BookingModal.Show(name)
}

func (m *Model) book(t *components.Theater) tea.Cmd {
	if m.opener == nil {
		return m.setStatus(t.URL, false)
	}
	return OpenURLCmd(m.opener, t.Name, t.URL)
}

// shutdown tears down every playback session before quitting
func (m *Model) shutdown() tea.Cmd {
	if m.modalSession != nil {
		m.modalSession.Dispose()
		m.modalSession = nil
	}
	m.presenter.Close()
	return tea.Quit
}
