package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/listing"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Tabs is the single-line sort mode switcher with the active genre label
type Tabs struct {
	active     listing.SortMode
	genreLabel string
	width      int
}

func NewTabs() Tabs {
	return Tabs{genreLabel: AllGenresLabel}
}

func (t *Tabs) SetActive(mode listing.SortMode) { t.active = mode }

func (t *Tabs) SetGenreLabel(label string) { t.genreLabel = label }

func (t *Tabs) SetWidth(width int) { t.width = width }

func (t Tabs) Active() listing.SortMode { return t.active }

// Next returns the mode after the active one, wrapping around
func (t Tabs) Next() listing.SortMode {
	return listing.Modes[(int(t.active)+1)%len(listing.Modes)]
}

func tabLabel(i int, mode listing.SortMode) string {
	label := fmt.Sprintf("%d %s", i+1, mode.Label())
	if mode == listing.SortBooking {
		label += " (근사치)"
	}
	return label
}

func (t Tabs) renderTab(i int, mode listing.SortMode) string {
	if mode == t.active {
		return styles.ActiveTabStyle.Render(tabLabel(i, mode))
	}
	return styles.InactiveTabStyle.Render(tabLabel(i, mode))
}

// HitTest maps a column on the tab line to a sort mode
func (t Tabs) HitTest(x int) (listing.SortMode, bool) {
	pos := 0
	for i, mode := range listing.Modes {
		w := lipgloss.Width(t.renderTab(i, mode))
		if x >= pos && x < pos+w {
			return mode, true
		}
		pos += w
	}
	return t.active, false
}

func (t Tabs) View() string {
	var parts []string
	for i, mode := range listing.Modes {
		parts = append(parts, t.renderTab(i, mode))
	}
	left := strings.Join(parts, "")
	right := styles.KeyHint("f", "장르: "+t.genreLabel)

	gap := t.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
