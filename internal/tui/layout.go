package tui

import "github.com/mmcdole/marquee/internal/tui/components"

// Vertical layout: tab line on top, footer at the bottom
const (
	TabsHeight   = 1
	FooterHeight = 1

	// Grid never shrinks below one card row
	MinGridHeight = components.CardHeight + components.BorderHeight + components.HeaderLines
)

// updateLayout recalculates component sizes after a resize
func (m *Model) updateLayout() {
	m.Tabs.SetWidth(m.Width)
	m.Hero.SetWidth(m.Width)
	m.Grid.SetSize(m.Width, m.gridHeight())
}

// gridTop is the screen row of the grid's top border
func (m Model) gridTop() int {
	return TabsHeight + components.HeroHeight
}

func (m Model) gridHeight() int {
	return max(MinGridHeight, m.Height-m.gridTop()-FooterHeight)
}
