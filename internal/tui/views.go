package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Content-area messages
const (
	LoadingMessage   = "영화 정보를 불러오는 중..."
	LoadErrorMessage = "영화 정보를 불러오는데 실패했습니다. 잠시 후 다시 시도해주세요."
	EmptyMessage     = "표시할 영화가 없습니다."
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerFrame(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(spinnerFrame(frame))
}

// wordWrap wraps text to the specified width in terminal cells. Hangul
// has no spaces between many phrases, so overlong words are hard-wrapped.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// renderCentered draws msg in the middle of a width x height area
func renderCentered(msg string, width, height int) string {
	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		msg)
}

// RenderLoadError renders the content-area message for a failed listing
func RenderLoadError(width int) string {
	return styles.ErrorStyle.Render(wordWrap(LoadErrorMessage, width-4)) + "\n\n" +
		styles.KeyHint("r", "다시 시도")
}

// renderBody renders the area below the tabs and hero
func (m Model) renderBody(height int) string {
	switch m.State {
	case StateLoading:
		return renderCentered(RenderSpinner(m.SpinnerFrame)+" "+styles.DimStyle.Render(LoadingMessage), m.Width, height)
	case StateLoadFailed:
		return renderCentered(RenderLoadError(m.Width), m.Width, height)
	}
	if m.listing.Empty() {
		return renderCentered(styles.DimStyle.Render(EmptyMessage), m.Width, height)
	}
	return m.Grid.View()
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	} else if m.State == StateBrowsing && m.Grid.IsFiltering() {
		left = styles.DimStyle.Render("esc 검색 해제")
	}

	var hints []string
	for _, b := range Keys.ShortHelp() {
		hints = append(hints, styles.KeyHint(b.Help().Key, b.Help().Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.Truncate(left, m.Width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("도움말"))
	b.WriteString("\n")

	for i, group := range Keys.FullHelp() {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(h.Key, 8)))
			b.WriteString(styles.HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKeyStyle.Render(styles.Pad("hjkl", 8)) + styles.HelpDescStyle.Render("카드 이동"))
	b.WriteString("\n")
	b.WriteString(styles.HelpKeyStyle.Render(styles.Pad("mouse", 8)) + styles.HelpDescStyle.Render("클릭으로 선택, 가장자리에서 자동 스크롤"))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("아무 키나 누르면 돌아갑니다"))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}
