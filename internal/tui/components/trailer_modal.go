package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// NoTrailerMessage is shown when the title has no playable trailer
const NoTrailerMessage = "트레일러가 없습니다."

const trailerModalWidth = 56

// TrailerModal shows the trailer player status for one title
type TrailerModal struct {
	visible    bool
	name       string
	url        string
	hasTrailer bool
	state      playback.State
	hasSession bool
}

func NewTrailerModal() TrailerModal {
	return TrailerModal{}
}

// Show opens the modal. An empty url means the title has no trailer.
func (m *TrailerModal) Show(name, url string) {
	m.visible = true
	m.name = name
	m.url = url
	m.hasTrailer = url != ""
	m.state = playback.StateIdle
	m.hasSession = false
}

func (m *TrailerModal) Hide() {
	m.visible = false
}

func (m TrailerModal) IsVisible() bool {
	return m.visible
}

// SetPlayback records the modal session's state
func (m *TrailerModal) SetPlayback(state playback.State, hasSession bool) {
	m.state = state
	m.hasSession = hasSession
}

// HandleKey processes a key press, returns (handled, closed)
func (m *TrailerModal) HandleKey(msg tea.KeyMsg) (handled bool, closed bool) {
	if !m.visible {
		return false, false
	}
	switch msg.String() {
	case "esc", "q", "t", "enter":
		m.Hide()
		return true, true
	}
	return true, false
}

func (m TrailerModal) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate(m.name, trailerModalWidth)))
	b.WriteString("\n")

	switch {
	case !m.hasTrailer:
		b.WriteString(styles.DimStyle.Render(NoTrailerMessage))
	case m.hasSession:
		b.WriteString(styles.SuccessStyle.Render("▶ " + orIdle(PlaybackLabel(m.state))))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(styles.Truncate(m.url, trailerModalWidth)))
	default:
		b.WriteString(styles.SubtitleStyle.Render("플레이어가 없어 링크만 표시합니다"))
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Render(styles.Truncate(m.url, trailerModalWidth)))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.KeyHint("esc", "닫기"))

	return styles.ModalStyle.Width(trailerModalWidth + 4).Render(b.String())
}

func orIdle(label string) string {
	if label == "" {
		return "대기 중"
	}
	return label
}
