package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/card"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the card grid
const (
	// Card content width, excluding the card's own border and padding
	CardContentWidth = 22
	// Border (2) + padding (2) around the content
	CardWidth = CardContentWidth + 4
	// Four content lines plus top and bottom border
	CardHeight = 6

	BorderWidth  = 2
	BorderHeight = 2

	// Section title line at the top of the interior
	HeaderLines = 1
)

// Grid lays out movie cards in rows and scrolls them by terminal line
type Grid struct {
	cards []card.Card

	// Selection
	cursor     int
	featuredID int

	// Scroll position in lines; fractional so auto-scroll can move smoothly
	offset float64

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into cards
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "제목으로 찾기..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{filterInput: ti}
}

// SetCards replaces the cards and resets cursor, scroll and filter
func (g *Grid) SetCards(cards []card.Card) {
	g.cards = cards
	g.cursor = 0
	g.offset = 0
	g.clearFilter()
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.clampOffset()
}

// SetTitle sets the section title shown above the cards
func (g *Grid) SetTitle(title string) {
	g.title = title
}

// SetFeatured marks the card drawn with the featured border
func (g *Grid) SetFeatured(id int) {
	g.featuredID = id
}

func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Columns returns how many cards fit side by side
func (g Grid) Columns() int {
	return max(1, (g.width-BorderWidth)/CardWidth)
}

// ViewportTop is the row, relative to the grid, where cards start
func (g Grid) ViewportTop() int {
	return BorderHeight/2 + HeaderLines
}

// ViewportHeight is the number of card lines visible at once
func (g Grid) ViewportHeight() int {
	h := g.height - BorderHeight - HeaderLines
	if g.filterActive {
		h--
	}
	return max(1, h)
}

func (g Grid) contentHeight() int {
	rows := (g.itemCount() + g.Columns() - 1) / g.Columns()
	return rows * CardHeight
}

func (g Grid) maxOffset() float64 {
	return float64(max(0, g.contentHeight()-g.ViewportHeight()))
}

func (g *Grid) clampOffset() {
	g.offset = min(max(g.offset, 0), g.maxOffset())
}

// Offset returns the current scroll position in lines
func (g Grid) Offset() float64 {
	return g.offset
}

// Scrollable reports whether the cards overflow the viewport
func (g Grid) Scrollable() bool {
	return g.maxOffset() > 0
}

// ScrollBy moves the viewport by delta lines. It returns false once the
// viewport is pinned against the top or bottom in the direction of travel.
func (g *Grid) ScrollBy(delta float64) bool {
	before := g.offset
	g.offset += delta
	g.clampOffset()
	if g.offset == before {
		return false
	}
	if delta < 0 {
		return g.offset > 0
	}
	return g.offset < g.maxOffset()
}

// Cursor returns the cursor position within the visible cards
func (g Grid) Cursor() int {
	return g.cursor
}

// Selected returns the card under the cursor
func (g Grid) Selected() (card.Card, bool) {
	if g.cursor < 0 || g.cursor >= g.itemCount() {
		return card.Card{}, false
	}
	return g.cards[g.mapIndex(g.cursor)], true
}

// SelectID moves the cursor to the card for id and scrolls it into view
func (g *Grid) SelectID(id int) bool {
	for i := range g.itemCount() {
		if g.cards[g.mapIndex(i)].ID == id {
			g.cursor = i
			g.ensureVisible()
			return true
		}
	}
	return false
}

// HitTest maps a point relative to the grid's top-left corner to a card
func (g Grid) HitTest(x, y int) (card.Card, bool) {
	vy := y - g.ViewportTop()
	vx := x - BorderWidth/2
	if vy < 0 || vy >= g.ViewportHeight() || vx < 0 {
		return card.Card{}, false
	}
	col := vx / CardWidth
	if col >= g.Columns() {
		return card.Card{}, false
	}
	row := (vy + int(g.offset)) / CardHeight
	i := row*g.Columns() + col
	if i >= g.itemCount() {
		return card.Card{}, false
	}
	return g.cards[g.mapIndex(i)], true
}

func (g *Grid) ensureVisible() {
	row := g.cursor / g.Columns()
	top := float64(row * CardHeight)
	bottom := top + CardHeight
	vh := float64(g.ViewportHeight())
	if top < g.offset {
		g.offset = top
	}
	if bottom > g.offset+vh {
		g.offset = bottom - vh
	}
	g.clampOffset()
}

func (g *Grid) moveCursor(delta int) {
	count := g.itemCount()
	if count == 0 {
		return
	}
	g.cursor = min(max(g.cursor+delta, 0), count-1)
	g.ensureVisible()
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
}

// IsFilterTyping returns true while keystrokes go to the filter input
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// IsFiltering returns true if filtered results are shown
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// ClearFilter deactivates the filter and shows all cards
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.clampOffset()
}

// applyFilter narrows the cards to fuzzy title matches, best match first
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	titles := make([]string, len(g.cards))
	for i, c := range g.cards {
		titles[i] = strings.ToLower(c.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	g.cursor = 0
	g.offset = 0
}

func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.cards)
}

func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// IsEmpty returns true if no card is visible
func (g Grid) IsEmpty() bool {
	return g.itemCount() == 0
}

// Update handles key messages while the grid is focused
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	if g.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, GridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(msg, GridKeys.Accept):
				// Keep the results, hand keys back to navigation
				g.filterInput.Blur()
				return g, nil
			case msg.String() == "backspace" && g.filterInput.Value() == "":
				g.clearFilter()
				return g, nil
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	if g.filterActive {
		switch {
		case key.Matches(keyMsg, GridKeys.Escape):
			g.clearFilter()
			return g, nil
		case key.Matches(keyMsg, GridKeys.Filter):
			g.filterInput.Focus()
			return g, nil
		}
	}

	cols := g.Columns()
	page := max(1, g.ViewportHeight()/CardHeight) * cols

	switch {
	case key.Matches(keyMsg, GridKeys.Left):
		g.moveCursor(-1)
	case key.Matches(keyMsg, GridKeys.Right):
		g.moveCursor(1)
	case key.Matches(keyMsg, GridKeys.Up):
		g.moveCursor(-cols)
	case key.Matches(keyMsg, GridKeys.Down):
		g.moveCursor(cols)
	case key.Matches(keyMsg, GridKeys.Home):
		g.moveCursor(-g.itemCount())
	case key.Matches(keyMsg, GridKeys.End):
		g.moveCursor(g.itemCount())
	case key.Matches(keyMsg, GridKeys.PageUp):
		g.moveCursor(-page)
	case key.Matches(keyMsg, GridKeys.PageDown):
		g.moveCursor(page)
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	innerWidth := g.width - frameW

	header := styles.Pad(styles.TitleStyle.Render(g.title), innerWidth)
	if g.title == "" {
		header = " "
	}

	lines := g.cardLines()
	vh := g.ViewportHeight()
	start := int(g.offset)
	visible := make([]string, 0, vh)
	for i := start; i < start+vh; i++ {
		if i < len(lines) {
			visible = append(visible, lines[i])
		} else {
			visible = append(visible, "")
		}
	}

	if g.itemCount() == 0 && g.filterQuery != "" {
		visible[0] = styles.DimStyle.Render("일치하는 영화가 없습니다")
	}

	content := header + "\n" + strings.Join(visible, "\n")
	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}

	return style.
		Width(innerWidth).
		Height(g.height - frameH).
		Render(content)
}

// cardLines renders every card row and returns the individual lines
func (g Grid) cardLines() []string {
	count := g.itemCount()
	cols := g.Columns()

	var lines []string
	for rowStart := 0; rowStart < count; rowStart += cols {
		var row []string
		for i := rowStart; i < min(rowStart+cols, count); i++ {
			row = append(row, g.renderCard(g.cards[g.mapIndex(i)], i == g.cursor && g.focused))
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, row...)
		lines = append(lines, strings.Split(block, "\n")...)
	}
	return lines
}

func (g Grid) renderCard(c card.Card, selected bool) string {
	style := styles.CardStyle
	switch {
	case selected:
		style = styles.CardSelectedStyle
	case c.ID == g.featuredID:
		style = styles.CardFeaturedStyle
	}

	w := CardContentWidth
	rating := styles.RatingStyle.Render("★ " + c.Rating)
	if !c.HasPoster {
		rating += styles.DimStyle.Render(" · " + card.NoPosterText)
	}

	body := strings.Join([]string{
		styles.TitleStyle.Render(styles.Pad(c.Title, w)),
		styles.DimStyle.Render(styles.Pad(c.Date, w)),
		styles.SubtitleStyle.Render(styles.Pad(c.Genres, w)),
		rating,
	}, "\n")

	return style.Width(w + 2).Render(body)
}

// renderFilterBar renders the filter input with a match count
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()
	if g.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.cards)))
}
