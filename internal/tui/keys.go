package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings. Grid movement lives
// in components.GridKeys.
type KeyMap struct {
	// Tabs
	SortOriginal   key.Binding
	SortPopularity key.Binding
	SortBooking    key.Binding
	NextTab        key.Binding

	// Actions
	Feature key.Binding
	Genre   key.Binding
	Filter  key.Binding
	Trailer key.Binding
	Booking key.Binding
	Escape  key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SortOriginal: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "현재 상영작"),
		),
		SortPopularity: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "인기순"),
		),
		SortBooking: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "예매율순"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "다음 탭"),
		),
		Feature: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "대표 영화로"),
		),
		Genre: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "장르"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "검색"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "트레일러"),
		),
		Booking: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "예매"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "닫기"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "새로고침"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "도움말"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "종료"),
		),
	}
}

// Keys is the global key map instance
var Keys = DefaultKeyMap()

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Feature, k.Trailer, k.Booking, k.Genre, k.Filter, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortOriginal, k.SortPopularity, k.SortBooking, k.NextTab},
		{k.Feature, k.Trailer, k.Booking},
		{k.Genre, k.Filter, k.Escape, k.Reload, k.Help, k.Quit},
	}
}
