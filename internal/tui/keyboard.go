package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/listing"
)

// handleKeyMsg routes a key press: help overlay, then modals, then the
// grid filter, then global bindings. Anything left moves the grid cursor.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.shutdown()
	}

	if m.State == StateHelp {
		m.State = m.prevState
		return m, nil
	}

	if handled, next, cmd := m.routeToModal(msg); handled {
		return next, cmd
	}

	if m.State == StateBrowsing && m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, m.shutdown()
	case key.Matches(msg, Keys.Help):
		m.prevState = m.State
		m.State = StateHelp
		return m, nil
	case key.Matches(msg, Keys.Reload):
		if m.State == StateBrowsing && len(m.listing.All()) > 0 {
			return m, nil
		}
		m.State = StateLoading
		return m, LoadCatalogCmd(m.catalog)
	}

	if m.State != StateBrowsing {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.SortOriginal):
		return m, m.setSortMode(listing.SortOriginal)
	case key.Matches(msg, Keys.SortPopularity):
		return m, m.setSortMode(listing.SortPopularity)
	case key.Matches(msg, Keys.SortBooking):
		return m, m.setSortMode(listing.SortBooking)
	case key.Matches(msg, Keys.NextTab):
		return m, m.setSortMode(m.Tabs.Next())
	case key.Matches(msg, Keys.Genre):
		m.openGenrePicker()
		return m, nil
	case key.Matches(msg, Keys.Filter):
		m.Grid.ToggleFilter()
		return m, nil
	case key.Matches(msg, Keys.Trailer):
		return m, m.openTrailer()
	case key.Matches(msg, Keys.Booking):
		m.openBooking()
		return m, nil
	case key.Matches(msg, Keys.Feature):
		if c, ok := m.Grid.Selected(); ok {
			return m, m.featureID(c.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

// routeToModal routes key input to the open modal, which takes every key.
// Returns (handled, model, cmd) where handled is true if a modal consumed the input
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case m.TrailerModal.IsVisible():
		if _, closed := m.TrailerModal.HandleKey(msg); closed {
			m.closeTrailer()
		}
		return true, m, nil

	case m.BookingModal.IsVisible():
		if _, chosen := m.BookingModal.HandleKey(msg); chosen != nil {
			return true, m, m.book(chosen)
		}
		return true, m, nil

	case m.GenrePicker.IsVisible():
		if _, sel := m.GenrePicker.HandleKey(msg); sel != nil {
			return true, m, m.setGenre(*sel)
		}
		return true, m, nil
	}
	return false, m, nil
}
