package listing

import (
	"slices"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

func sample() []domain.Title {
	return []domain.Title{
		{ID: 1, Name: "A", Popularity: 50, VoteCount: 10, GenreIDs: []int{28}},
		{ID: 2, Name: "B", Popularity: 80, VoteCount: 30, GenreIDs: []int{18, 28}},
		{ID: 3, Name: "C", Popularity: 50, VoteCount: 30, GenreIDs: []int{35}},
		{ID: 4, Name: "D", Popularity: 10, VoteCount: 99},
		{ID: 5, Name: "E", Popularity: 80, VoteCount: 10, GenreIDs: []int{28}},
	}
}

func ids(titles []domain.Title) []int {
	out := make([]int, len(titles))
	for i, t := range titles {
		out[i] = t.ID
	}
	return out
}

func TestDerivedViewOrdering(t *testing.T) {
	tests := []struct {
		name string
		mode SortMode
		want []int
	}{
		{"original keeps API order", SortOriginal, []int{1, 2, 3, 4, 5}},
		{"popularity descending, ties stable", SortPopularity, []int{2, 5, 1, 3, 4}},
		{"vote count descending, ties stable", SortBooking, []int{4, 2, 3, 1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetAll(sample())
			s.SetSortMode(tt.mode)
			if got := ids(s.DerivedView()); !slices.Equal(got, tt.want) {
				t.Errorf("DerivedView() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerivedViewIsPermutation(t *testing.T) {
	s := New()
	s.SetAll(sample())
	base := ids(sample())
	slices.Sort(base)

	for _, mode := range Modes {
		s.SetSortMode(mode)
		got := ids(s.DerivedView())
		slices.Sort(got)
		if !slices.Equal(got, base) {
			t.Errorf("%s: view %v is not a permutation of %v", mode, got, base)
		}
	}
}

func TestDerivedViewMonotonic(t *testing.T) {
	s := New()
	s.SetAll(sample())

	s.SetSortMode(SortPopularity)
	view := s.DerivedView()
	for i := 1; i < len(view); i++ {
		if view[i-1].Popularity < view[i].Popularity {
			t.Errorf("popularity not descending at %d: %v < %v", i, view[i-1].Popularity, view[i].Popularity)
		}
	}

	s.SetSortMode(SortBooking)
	view = s.DerivedView()
	for i := 1; i < len(view); i++ {
		if view[i-1].VoteCount < view[i].VoteCount {
			t.Errorf("vote count not descending at %d", i)
		}
	}
}

func TestGenreFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter GenreFilter
		mode   SortMode
		want   []int
	}{
		{"all is identity", AllGenres, SortOriginal, []int{1, 2, 3, 4, 5}},
		{"action only", OnlyGenre(28), SortOriginal, []int{1, 2, 5}},
		{"action by popularity", OnlyGenre(28), SortPopularity, []int{2, 5, 1}},
		{"unknown genre", OnlyGenre(999), SortOriginal, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetAll(sample())
			s.SetGenreFilter(tt.filter)
			s.SetSortMode(tt.mode)

			view := s.DerivedView()
			if got := ids(view); !slices.Equal(got, tt.want) {
				t.Errorf("DerivedView() = %v, want %v", got, tt.want)
			}
			if id, ok := tt.filter.GenreID(); ok {
				for _, v := range view {
					if !v.HasGenre(id) {
						t.Errorf("title %d lacks genre %d", v.ID, id)
					}
				}
			}
			if s.Empty() != (len(tt.want) == 0) {
				t.Errorf("Empty() = %v", s.Empty())
			}
		})
	}
}

func TestEmptyCollection(t *testing.T) {
	s := New()
	s.SetAll(nil)
	if !s.Empty() {
		t.Error("Empty() = false for empty collection")
	}
	if len(s.DerivedView()) != 0 {
		t.Error("DerivedView() not empty")
	}
	if _, ok := s.Head(); ok {
		t.Error("Head() ok for empty collection")
	}
}

func TestHeadFollowsSortAndFilter(t *testing.T) {
	s := New()
	s.SetAll(sample())

	if h, _ := s.Head(); h.ID != 1 {
		t.Errorf("Head() = %d, want 1", h.ID)
	}
	s.SetSortMode(SortBooking)
	if h, _ := s.Head(); h.ID != 4 {
		t.Errorf("Head() = %d, want 4", h.ID)
	}
	s.SetGenreFilter(OnlyGenre(35))
	if h, _ := s.Head(); h.ID != 3 {
		t.Errorf("Head() = %d, want 3", h.ID)
	}
}

func TestSetAllCopiesInput(t *testing.T) {
	in := sample()
	s := New()
	s.SetAll(in)
	in[0].Name = "mutated"
	if s.All()[0].Name != "A" {
		t.Error("SetAll retained caller's slice")
	}
}

func TestParseSortMode(t *testing.T) {
	for _, m := range Modes {
		got, ok := ParseSortMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseSortMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseSortMode("rating"); ok {
		t.Error("ParseSortMode accepted unknown mode")
	}
}
