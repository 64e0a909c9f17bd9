package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/listing"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// AllGenresLabel is the picker entry that clears the genre filter
const AllGenresLabel = "전체 장르"

const pickerWidth = 24

// GenreOption is one picker entry
type GenreOption struct {
	Label  string
	Filter listing.GenreFilter
}

// GenreOptions builds the picker entries: "all" first, then the visible
// genres in catalog order.
func GenreOptions(visible domain.GenreSet) []GenreOption {
	opts := []GenreOption{{Label: AllGenresLabel, Filter: listing.AllGenres}}
	for _, g := range visible {
		opts = append(opts, GenreOption{Label: g.Name, Filter: listing.OnlyGenre(g.ID)})
	}
	return opts
}

// GenrePicker is a popup list of genres with type-ahead narrowing
type GenrePicker struct {
	visible bool
	options []GenreOption
	matches []int // indices into options, in display order
	cursor  int
	active  listing.GenreFilter
	input   textinput.Model
}

func NewGenrePicker() GenrePicker {
	ti := textinput.New()
	ti.Placeholder = "장르 검색"
	ti.Prompt = "› "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.CharLimit = 20
	return GenrePicker{input: ti}
}

// SetOptions replaces the picker entries
func (m *GenrePicker) SetOptions(opts []GenreOption) {
	m.options = opts
	m.narrow()
}

// Show opens the picker with the cursor on the active filter
func (m *GenrePicker) Show(active listing.GenreFilter) {
	m.visible = true
	m.active = active
	m.input.SetValue("")
	m.input.Focus()
	m.narrow()
	for i, idx := range m.matches {
		if m.options[idx].Filter == active {
			m.cursor = i
			break
		}
	}
}

func (m *GenrePicker) Hide() {
	m.visible = false
	m.input.Blur()
}

func (m GenrePicker) IsVisible() bool {
	return m.visible
}

// narrow recomputes matches from the type-ahead query, best match first
func (m *GenrePicker) narrow() {
	m.cursor = 0
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = make([]int, len(m.options))
		for i := range m.options {
			m.matches[i] = i
		}
		return
	}

	labels := make([]string, len(m.options))
	for i, o := range m.options {
		labels[i] = o.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.Stable(ranks)

	m.matches = make([]int, len(ranks))
	for i, r := range ranks {
		m.matches[i] = r.OriginalIndex
	}
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *GenrePicker) HandleKey(msg tea.KeyMsg) (handled bool, selection *GenreOption) {
	if !m.visible {
		return false, nil
	}

	switch msg.String() {
	case "down", "ctrl+n":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return true, nil
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		if len(m.matches) == 0 {
			return true, nil
		}
		chosen := m.options[m.matches[m.cursor]]
		m.Hide()
		return true, &chosen
	case "esc":
		m.Hide()
		return true, nil
	}

	before := m.input.Value()
	m.input, _ = m.input.Update(msg)
	if m.input.Value() != before {
		m.narrow()
	}
	return true, nil // consume all keys when visible
}

// View renders the picker
func (m GenrePicker) View() string {
	if !m.visible {
		return ""
	}

	lines := []string{m.input.View(), ""}
	if len(m.matches) == 0 {
		lines = append(lines, styles.DimStyle.Render(styles.Pad("일치하는 장르 없음", pickerWidth)))
	}
	for i, idx := range m.matches {
		opt := m.options[idx]
		prefix := "  "
		if opt.Filter == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, pickerWidth)

		switch {
		case i == m.cursor:
			lines = append(lines, styles.SelectedItemStyle.Render(text))
		case opt.Filter == m.active:
			lines = append(lines, styles.AccentStyle.Render(text))
		default:
			lines = append(lines, styles.NormalItemStyle.Render(text))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.MarqueeRed).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("장르") + "\n" + strings.Join(lines, "\n"))
}
