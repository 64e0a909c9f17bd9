package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/featured"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// HeroHeight is the full height of the hero panel including its border
const HeroHeight = 9

// PlaybackLabel describes a playback state for the status line
func PlaybackLabel(s playback.State) string {
	switch s {
	case playback.StateEmbedding:
		return "트레일러 준비 중"
	case playback.StateAttemptingPlay:
		return "재생 시도 중"
	case playback.StatePlaying:
		return "재생 중 (음소거)"
	case playback.StatePlayingUnmuted:
		return "재생 중"
	case playback.StateAwaitingGesture:
		return "재생 중 (음소거) · 아무 키나 눌러 소리 켜기"
	case playback.StateAutoplayBlocked:
		return "자동 재생이 차단되었습니다 · t 키로 열기"
	case playback.StateFailed:
		return "트레일러를 재생할 수 없습니다"
	default:
		return ""
	}
}

// HeroPanel renders the featured title above the grid
type HeroPanel struct {
	hero       featured.Hero
	state      playback.State
	hasSession bool
	width      int
	spinner    string
}

func NewHeroPanel() HeroPanel {
	return HeroPanel{}
}

func (h *HeroPanel) SetHero(hero featured.Hero) { h.hero = hero }

func (h HeroPanel) Hero() featured.Hero { return h.hero }

// SetPlayback records the hero session's state; hasSession is false when
// no player is attached.
func (h *HeroPanel) SetPlayback(state playback.State, hasSession bool) {
	h.state = state
	h.hasSession = hasSession
}

func (h *HeroPanel) SetWidth(width int) { h.width = width }

// SetSpinner sets the frame drawn while the hero is loading
func (h *HeroPanel) SetSpinner(frame string) { h.spinner = frame }

func (h HeroPanel) trailerLine() string {
	switch {
	case h.hero.Loading:
		return styles.SpinnerStyle.Render(h.spinner) + " " + styles.DimStyle.Render("불러오는 중...")
	case !h.hero.HasTrailer():
		return styles.DimStyle.Render(h.hero.TrailerStatus)
	case h.hasSession:
		label := PlaybackLabel(h.state)
		if h.state == playback.StateFailed || h.state == playback.StateAutoplayBlocked {
			return styles.ErrorStyle.Render("▶ " + label)
		}
		return styles.SuccessStyle.Render("▶ " + label)
	default:
		return styles.KeyHint("t", "트레일러") + " " + styles.DimStyle.Render(h.hero.TrailerURL)
	}
}

// View renders the panel at HeroHeight lines
func (h HeroPanel) View() string {
	frameW, frameH := styles.HeroStyle.GetFrameSize()
	inner := max(1, h.width-frameW)
	bodyHeight := HeroHeight - frameH

	if h.hero.Name == "" {
		return styles.HeroStyle.
			Width(h.width - styles.HeroStyle.GetHorizontalBorderSize()).
			Height(bodyHeight).
			Render(styles.DimStyle.Render("영화를 선택하세요"))
	}

	title := styles.HeroTitleStyle.Render(styles.Truncate(h.hero.Name, inner-12))
	rating := styles.RatingStyle.Render("★ " + h.hero.Rating)
	head := title + "  " + rating
	if h.hero.Date != "" {
		head += "  " + styles.DimStyle.Render(h.hero.Date)
	}

	// Overview gets whatever the title, trailer line and spacer leave over
	overviewLines := max(1, bodyHeight-3)
	overview := ""
	if !h.hero.Loading {
		wrapped := strings.Split(lipgloss.NewStyle().Width(inner).Render(h.hero.Overview), "\n")
		if len(wrapped) > overviewLines {
			wrapped = wrapped[:overviewLines]
			last := overviewLines - 1
			wrapped[last] = styles.Truncate(strings.TrimRight(wrapped[last], " ")+"…", inner)
		}
		overview = styles.SubtitleStyle.Render(strings.Join(wrapped, "\n"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		head,
		"",
		lipgloss.NewStyle().Height(overviewLines).Render(overview),
		h.trailerLine(),
	)

	return styles.HeroStyle.
		Width(h.width - styles.HeroStyle.GetHorizontalBorderSize()).
		Height(bodyHeight).
		MaxHeight(HeroHeight).
		Render(body)
}
