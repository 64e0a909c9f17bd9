// Package listing holds the movie collection together with the active sort
// mode and genre filter, and derives the visible view from them.
package listing

import (
	"cmp"
	"slices"

	"github.com/mmcdole/marquee/internal/domain"
)

// SortMode selects the ordering of the derived view
type SortMode int

const (
	SortOriginal SortMode = iota
	SortPopularity
	SortBooking
)

// Modes lists every sort mode in tab order
var Modes = []SortMode{SortOriginal, SortPopularity, SortBooking}

// Label returns the section title shown for the mode
func (m SortMode) Label() string {
	switch m {
	case SortPopularity:
		return "인기순"
	case SortBooking:
		return "예매율순"
	default:
		return "현재 상영작"
	}
}

// EnglishLabel is the untranslated label printed beside Label by list
func (m SortMode) EnglishLabel() string {
	switch m {
	case SortPopularity:
		return "Popular"
	case SortBooking:
		return "Booking rate (approx.)"
	default:
		return "Now Playing"
	}
}

// String returns the flag form of the mode
func (m SortMode) String() string {
	switch m {
	case SortPopularity:
		return "popularity"
	case SortBooking:
		return "booking"
	default:
		return "original"
	}
}

// ParseSortMode parses the flag form produced by String
func ParseSortMode(s string) (SortMode, bool) {
	for _, m := range Modes {
		if m.String() == s {
			return m, true
		}
	}
	return SortOriginal, false
}

// GenreFilter restricts the view to one genre. The zero value means all.
type GenreFilter struct {
	id  int
	set bool
}

// AllGenres matches every title
var AllGenres = GenreFilter{}

// OnlyGenre matches titles tagged with id
func OnlyGenre(id int) GenreFilter {
	return GenreFilter{id: id, set: true}
}

// IsAll reports whether the filter matches every title
func (f GenreFilter) IsAll() bool { return !f.set }

// GenreID returns the filtered genre id and whether one is set
func (f GenreFilter) GenreID() (int, bool) { return f.id, f.set }

func (f GenreFilter) matches(t domain.Title) bool {
	return !f.set || t.HasGenre(f.id)
}

// State is the listing state. It is not safe for concurrent use; the TUI
// owns it from the update loop.
type State struct {
	all    []domain.Title
	sort   SortMode
	filter GenreFilter
}

// New returns an empty listing in original order with no filter
func New() *State {
	return &State{}
}

// SetAll replaces the base collection. The order given is the original order.
func (s *State) SetAll(titles []domain.Title) {
	s.all = slices.Clone(titles)
}

func (s *State) SetSortMode(mode SortMode) { s.sort = mode }

func (s *State) SetGenreFilter(filter GenreFilter) { s.filter = filter }

func (s *State) SortMode() SortMode { return s.sort }

func (s *State) GenreFilter() GenreFilter { return s.filter }

// All returns the base collection in original order
func (s *State) All() []domain.Title {
	return slices.Clone(s.all)
}

// DerivedView filters the base collection by genre, then orders it by the
// active sort mode. Sorts are stable, so ties keep their original order.
// The result is a fresh slice on every call.
func (s *State) DerivedView() []domain.Title {
	view := make([]domain.Title, 0, len(s.all))
	for _, t := range s.all {
		if s.filter.matches(t) {
			view = append(view, t)
		}
	}

	switch s.sort {
	case SortPopularity:
		slices.SortStableFunc(view, func(a, b domain.Title) int {
			return cmp.Compare(b.Popularity, a.Popularity)
		})
	case SortBooking:
		slices.SortStableFunc(view, func(a, b domain.Title) int {
			return cmp.Compare(b.VoteCount, a.VoteCount)
		})
	}
	return view
}

// Empty reports whether the derived view has nothing to show
func (s *State) Empty() bool {
	for _, t := range s.all {
		if s.filter.matches(t) {
			return false
		}
	}
	return true
}

// Head returns the first title of the derived view, which becomes the
// featured title after any sort or filter change.
func (s *State) Head() (domain.Title, bool) {
	view := s.DerivedView()
	if len(view) == 0 {
		return domain.Title{}, false
	}
	return view[0], true
}
