package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/listing"
	"github.com/mmcdole/marquee/internal/playback"
)

func TestBookingModalKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{"enter picks first", []tea.KeyMsg{{Type: tea.KeyEnter}}, "https://cgv.co.kr/"},
		{"digit picks directly", []tea.KeyMsg{runes("3")}, "https://www.megabox.co.kr/"},
		{"move then enter", []tea.KeyMsg{runes("j"), runes("j"), runes("k"), {Type: tea.KeyEnter}}, "https://www.lottecinema.co.kr/NLCHS"},
		{"cursor stops at end", []tea.KeyMsg{runes("j"), runes("j"), runes("j"), {Type: tea.KeyEnter}}, "https://www.megabox.co.kr/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBookingModal()
			m.Show("Dune")

			var chosen *Theater
			for _, k := range tt.keys {
				_, chosen = m.HandleKey(k)
			}
			if chosen == nil || chosen.URL != tt.want {
				t.Fatalf("chosen = %+v, want %s", chosen, tt.want)
			}
			if m.IsVisible() {
				t.Error("modal should close after a choice")
			}
		})
	}
}

func TestBookingModalEscape(t *testing.T) {
	m := NewBookingModal()
	m.Show("Dune")

	handled, chosen := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if !handled || chosen != nil || m.IsVisible() {
		t.Error("esc should close without a choice")
	}
}

func TestBookingModalHitTest(t *testing.T) {
	m := NewBookingModal()
	m.Show("Dune")

	if m.HitTest(0, bookingRowOffset-1) != nil {
		t.Error("title row should not choose")
	}
	if got := m.HitTest(5, bookingRowOffset+1); got == nil || got.Name != "롯데시네마" {
		t.Errorf("HitTest second row = %+v", got)
	}
	if m.HitTest(5, bookingRowOffset) != nil {
		t.Error("hidden modal should not choose")
	}
}

func TestCenteredHit(t *testing.T) {
	view := lipgloss.NewStyle().Width(10).Height(4).Render("x")

	x, y := CenteredOrigin(view, 30, 10)
	if x != 10 || y != 3 {
		t.Fatalf("origin = (%d, %d), want (10, 3)", x, y)
	}
	if lx, ly, ok := CenteredHit(view, 30, 10, 12, 4); !ok || lx != 2 || ly != 1 {
		t.Errorf("inside = (%d, %d, %v)", lx, ly, ok)
	}
	if _, _, ok := CenteredHit(view, 30, 10, 9, 4); ok {
		t.Error("left of the view should miss")
	}
	if _, _, ok := CenteredHit(view, 30, 10, 12, 7); ok {
		t.Error("below the view should miss")
	}
}

func TestTrailerModal(t *testing.T) {
	m := NewTrailerModal()
	m.Show("Dune", "")
	if !m.IsVisible() {
		t.Fatal("Show should open the modal")
	}
	if !containsText(m.View(), NoTrailerMessage) {
		t.Error("modal without a trailer should say so")
	}

	m.Show("Dune", "https://www.youtube.com/watch?v=abc")
	m.SetPlayback(playback.StatePlaying, true)
	if !containsText(m.View(), PlaybackLabel(playback.StatePlaying)) {
		t.Error("modal should show the playback state")
	}

	if handled, closed := m.HandleKey(runes("x")); !handled || closed {
		t.Error("other keys are swallowed without closing")
	}
	if _, closed := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); !closed || m.IsVisible() {
		t.Error("esc should close")
	}
}

func TestTabs(t *testing.T) {
	tabs := NewTabs()
	tabs.SetWidth(120)

	if tabs.Next() != listing.SortPopularity {
		t.Errorf("Next() = %v", tabs.Next())
	}
	tabs.SetActive(listing.SortBooking)
	if tabs.Next() != listing.SortOriginal {
		t.Errorf("Next() should wrap, got %v", tabs.Next())
	}

	if mode, ok := tabs.HitTest(0); !ok || mode != listing.SortOriginal {
		t.Errorf("HitTest(0) = (%v, %v)", mode, ok)
	}
	first := lipgloss.Width(tabs.renderTab(0, listing.SortOriginal))
	if mode, ok := tabs.HitTest(first); !ok || mode != listing.SortPopularity {
		t.Errorf("HitTest(%d) = (%v, %v)", first, mode, ok)
	}
	if _, ok := tabs.HitTest(110); ok {
		t.Error("HitTest past the tabs should miss")
	}
}

func containsText(view, s string) bool {
	return strings.Contains(ansi.Strip(view), s)
}
