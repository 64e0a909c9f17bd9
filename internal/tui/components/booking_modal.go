package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Theater is a booking destination
type Theater struct {
	Name string
	URL  string
}

// Theaters are the booking sites offered, in menu order
var Theaters = []Theater{
	{Name: "CGV", URL: "https://cgv.co.kr/"},
	{Name: "롯데시네마", URL: "https://www.lottecinema.co.kr/NLCHS"},
	{Name: "메가박스", URL: "https://www.megabox.co.kr/"},
}

const bookingModalWidth = 36

// bookingRowOffset is the first option row inside the rendered modal:
// border, top padding, title and its margin.
const bookingRowOffset = 4

// BookingModal lets the user pick a theater site to open
type BookingModal struct {
	visible bool
	title   string
	cursor  int
}

func NewBookingModal() BookingModal {
	return BookingModal{}
}

// Show opens the modal for the given movie title
func (m *BookingModal) Show(title string) {
	m.visible = true
	m.title = title
	m.cursor = 0
}

func (m *BookingModal) Hide() {
	m.visible = false
}

func (m BookingModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, chosen theater).
// A non-nil theater means the modal closed with a selection.
func (m *BookingModal) HandleKey(msg tea.KeyMsg) (handled bool, chosen *Theater) {
	if !m.visible {
		return false, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(Theaters)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "1", "2", "3":
		i := int(msg.String()[0] - '1')
		if i < len(Theaters) {
			return true, m.choose(i)
		}
	case "enter":
		return true, m.choose(m.cursor)
	case "esc", "q", "b":
		m.Hide()
	}
	return true, nil
}

// HitTest maps a point local to the rendered modal to a theater
func (m *BookingModal) HitTest(x, y int) *Theater {
	if !m.visible {
		return nil
	}
	i := y - bookingRowOffset
	if i < 0 || i >= len(Theaters) {
		return nil
	}
	return m.choose(i)
}

func (m *BookingModal) choose(i int) *Theater {
	m.cursor = i
	m.Hide()
	t := Theaters[i]
	return &t
}

func (m BookingModal) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate("예매하기 · "+m.title, bookingModalWidth)))
	b.WriteString("\n")

	for i, t := range Theaters {
		line := styles.Pad(fmt.Sprintf("%d  %s", i+1, t.Name), bookingModalWidth)
		if i == m.cursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.KeyHint("enter", "열기") + "  " + styles.KeyHint("esc", "닫기"))

	return styles.ModalStyle.Width(bookingModalWidth + 4).Render(b.String())
}
