package domain

import (
	"reflect"
	"slices"
	"testing"
)

func TestTitleMerge(t *testing.T) {
	summary := Title{
		ID:          7,
		Name:        "요약",
		Overview:    "summary overview",
		ReleaseDate: "2024-05-01",
		PosterPath:  "/p.jpg",
		Popularity:  42.5,
		VoteAverage: 7.1,
		VoteCount:   900,
		GenreIDs:    []int{18, 28},
	}

	tests := []struct {
		name   string
		detail Title
		want   Title
	}{
		{
			name:   "empty detail keeps summary",
			detail: Title{},
			want:   summary,
		},
		{
			name:   "detail wins where set",
			detail: Title{ID: 7, Name: "상세", Overview: "detail overview", BackdropPath: "/b.jpg", VoteAverage: 7.4},
			want: Title{
				ID:           7,
				Name:         "상세",
				Overview:     "detail overview",
				ReleaseDate:  "2024-05-01",
				PosterPath:   "/p.jpg",
				BackdropPath: "/b.jpg",
				Popularity:   42.5,
				VoteAverage:  7.4,
				VoteCount:    900,
				GenreIDs:     []int{18, 28},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summary.Merge(tt.detail)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeDoesNotAliasGenres(t *testing.T) {
	summary := Title{ID: 1, GenreIDs: []int{18}}
	merged := summary.Merge(Title{})
	merged.GenreIDs[0] = 99
	if summary.GenreIDs[0] != 18 {
		t.Errorf("summary genres mutated through merge: %v", summary.GenreIDs)
	}
}

func TestGenreSet(t *testing.T) {
	set := GenreSet{{ID: 18, Name: "드라마"}, {ID: 36, Name: "역사"}, {ID: 28, Name: "액션"}}

	if name, ok := set.Name(36); !ok || name != "역사" {
		t.Errorf("Name(36) = %q, %v", name, ok)
	}
	if _, ok := set.Name(1); ok {
		t.Error("Name(1) resolved an unknown id")
	}

	visible := set.Visible([]string{"역사", "History"})
	var ids []int
	for _, g := range visible {
		ids = append(ids, g.ID)
	}
	if !slices.Equal(ids, []int{18, 28}) {
		t.Errorf("Visible() ids = %v, want [18 28]", ids)
	}
}

func TestPickTrailer(t *testing.T) {
	tests := []struct {
		name    string
		videos  []Video
		wantKey string
		wantOK  bool
	}{
		{"none", nil, "", false},
		{
			name: "trailer preferred over earlier teaser",
			videos: []Video{
				{Key: "tz", Site: VideoSiteYouTube, Type: VideoTypeTeaser},
				{Key: "tr", Site: VideoSiteYouTube, Type: VideoTypeTrailer},
			},
			wantKey: "tr", wantOK: true,
		},
		{
			name: "teaser over clip",
			videos: []Video{
				{Key: "cl", Site: VideoSiteYouTube, Type: "Clip"},
				{Key: "tz", Site: VideoSiteYouTube, Type: VideoTypeTeaser},
			},
			wantKey: "tz", wantOK: true,
		},
		{
			name: "non-youtube trailer falls back to first",
			videos: []Video{
				{Key: "vm", Site: "Vimeo", Type: VideoTypeTrailer},
				{Key: "cl", Site: VideoSiteYouTube, Type: "Clip"},
			},
			wantKey: "vm", wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := PickTrailer(tt.videos)
			if ok != tt.wantOK || v.Key != tt.wantKey {
				t.Errorf("PickTrailer() = %q, %v; want %q, %v", v.Key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}
