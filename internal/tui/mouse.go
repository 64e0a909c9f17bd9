package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// handleMouseMsg handles hover, wheel and left clicks. Clicks count as a
// playback gesture like any key.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionMotion:
		return m, m.hover(msg.X, msg.Y)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		if !m.modalOpen() {
			m.Grid.ScrollBy(-wheelStep)
		}
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		if !m.modalOpen() {
			m.Grid.ScrollBy(wheelStep)
		}
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.forwardGesture()
		return m.click(msg.X, msg.Y)
	}
	return m, nil
}

func (m Model) modalOpen() bool {
	return m.TrailerModal.IsVisible() || m.BookingModal.IsVisible() || m.GenrePicker.IsVisible()
}

// hover holds the auto-scroll while the pointer is over the grid and
// restarts it once the pointer moves off
func (m *Model) hover(x, y int) tea.Cmd {
	top := m.gridTop()
	inside := m.State == StateBrowsing && !m.modalOpen() &&
		x >= 0 && x < m.Width && y >= top && y < top+m.gridHeight()
	if inside {
		m.scroller.enter(scrollVelocity(y-top-m.Grid.ViewportTop(), m.Grid.ViewportHeight()))
		return nil
	}
	m.scroller.leave()
	return m.kickScroll()
}

// kickScroll starts the continuous scroll when the listing can move
func (m *Model) kickScroll() tea.Cmd {
	if m.State != StateBrowsing || !m.Grid.Scrollable() {
		m.scroller.halt()
		return nil
	}
	return m.scroller.run()
}

func (m Model) click(x, y int) (tea.Model, tea.Cmd) {
	switch {
	case m.TrailerModal.IsVisible():
		if _, _, inside := components.CenteredHit(m.TrailerModal.View(), m.Width, m.Height, x, y); !inside {
			m.closeTrailer()
		}
		return m, nil

	case m.BookingModal.IsVisible():
		lx, ly, inside := components.CenteredHit(m.BookingModal.View(), m.Width, m.Height, x, y)
		if !inside {
			m.BookingModal.Hide()
			return m, nil
		}
		if t := m.BookingModal.HitTest(lx, ly); t != nil {
			return m, m.book(t)
		}
		return m, nil

	case m.GenrePicker.IsVisible():
		if _, _, inside := components.CenteredHit(m.GenrePicker.View(), m.Width, m.Height, x, y); !inside {
			m.GenrePicker.Hide()
		}
		return m, nil
	}

	if m.State != StateBrowsing {
		return m, nil
	}

	if y < TabsHeight {
		if mode, ok := m.Tabs.HitTest(x); ok {
			return m, m.setSortMode(mode)
		}
		return m, nil
	}

	if c, ok := m.Grid.HitTest(x, y-m.gridTop()); ok {
		m.Grid.SelectID(c.ID)
		return m, m.featureID(c.ID)
	}
	return m, nil
}
