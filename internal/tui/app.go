package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/card"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/featured"
	"github.com/mmcdole/marquee/internal/listing"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StateBrowsing
	StateLoadFailed
	StateHelp
)

const (
	tickInterval   = 100 * time.Millisecond
	statusDuration = 3 * time.Second
	wheelStep      = 3
)

// Deps are the services the UI is built on
type Deps struct {
	Catalog   domain.Catalog
	Presenter *featured.Presenter
	// Trailers starts the trailer modal's own sessions; may be nil
	Trailers *playback.Bootstrap
	Opener   URLOpener
	Images   card.Images
	// ExcludedGenres are hidden from the genre picker
	ExcludedGenres []string
	// Playback delivers state changes from every session
	Playback <-chan playback.Change
	Logger   *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State     ApplicationState
	prevState ApplicationState
	Ready     bool

	// Services
	catalog    domain.Catalog
	presenter  *featured.Presenter
	trailers   *playback.Bootstrap
	opener     URLOpener
	images     card.Images
	excluded   []string
	playbackCh <-chan playback.Change
	logger     *slog.Logger

	// Data
	listing *listing.State
	genres  domain.GenreSet

	// UI Components
	Tabs         components.Tabs
	Hero         components.HeroPanel
	Grid         components.Grid
	GenrePicker  components.GenrePicker
	TrailerModal components.TrailerModal
	BookingModal components.BookingModal

	// Session owned by the trailer modal while it is open
	modalSession *playback.Session

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	scroller     autoScroller
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	images := deps.Images
	if images == (card.Images{}) {
		images = card.DefaultImages
	}

	grid := components.NewGrid()
	grid.SetFocused(true)

	return Model{
		State:        StateLoading,
		catalog:      deps.Catalog,
		presenter:    deps.Presenter,
		trailers:     deps.Trailers,
		opener:       deps.Opener,
		images:       images,
		excluded:     deps.ExcludedGenres,
		playbackCh:   deps.Playback,
		logger:       logger,
		listing:      listing.New(),
		Tabs:         components.NewTabs(),
		Hero:         components.NewHeroPanel(),
		Grid:         grid,
		GenrePicker:  components.NewGenrePicker(),
		TrailerModal: components.NewTrailerModal(),
		BookingModal: components.NewBookingModal(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadCatalogCmd(m.catalog),
		TickCmd(tickInterval),
	}
	if m.playbackCh != nil {
		cmds = append(cmds, WaitForPlaybackCmd(m.playbackCh))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.kickScroll()

	case tea.KeyMsg:
		m.forwardGesture()
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.BlurMsg:
		m.scroller.blur()
		return m, nil

	case tea.FocusMsg:
		m.scroller.focus()
		return m, m.kickScroll()

	case TickMsg:
		m.SpinnerFrame++
		m.Hero.SetSpinner(spinnerFrame(m.SpinnerFrame))
		return m, TickCmd(tickInterval)

	case AutoScrollTickMsg:
		if !m.scroller.live(msg.Seq) {
			return m, nil
		}
		if m.State != StateBrowsing || !m.Grid.Scrollable() {
			m.scroller.halt()
			return m, nil
		}
		if !m.Grid.ScrollBy(m.scroller.velocity) {
			m.scroller.reverse()
		}
		return m, AutoScrollTickCmd(msg.Seq)

	case CatalogLoadedMsg:
		m.State = StateBrowsing
		m.genres = msg.Genres
		m.listing.SetAll(msg.Titles)
		m.logger.Info("catalog loaded", "titles", len(msg.Titles), "genres", len(msg.Genres))
		return m, m.refreshListing()

	case CatalogErrMsg:
		m.State = StateLoadFailed
		m.logger.Error("catalog load failed", "error", msg.Err)
		return m, nil

	case HeroEnrichedMsg:
		m.syncHero()
		return m, nil

	case PlaybackChangedMsg:
		m.applyPlayback(msg.Change)
		return m, WaitForPlaybackCmd(m.playbackCh)

	case LinkOpenedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to open booking link", "url", msg.URL, "error", msg.Err)
			return m, m.setStatus(fmt.Sprintf("%s 페이지를 열 수 없습니다", msg.Name), true)
		}
		return m, m.setStatus(fmt.Sprintf("%s 예매 페이지를 열었습니다", msg.Name), false)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return LoadingMessage
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var view string
	if m.State == StateBrowsing {
		view = lipgloss.JoinVertical(lipgloss.Left,
			m.Tabs.View(),
			m.Hero.View(),
			m.renderBody(m.gridHeight()),
			m.renderFooter(),
		)
	} else {
		view = lipgloss.JoinVertical(lipgloss.Left,
			m.Tabs.View(),
			m.renderBody(max(1, m.Height-TabsHeight-FooterHeight)),
			m.renderFooter(),
		)
	}

	// Overlay modals
	switch {
	case m.TrailerModal.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.TrailerModal.View())
	case m.BookingModal.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.BookingModal.View())
	case m.GenrePicker.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.GenrePicker.View())
	}

	return view
}
