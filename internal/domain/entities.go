package domain

import "slices"

// Title is a single movie as returned by the catalog.
//
// Listing endpoints return a summary variant; the per-title endpoint returns
// a detail variant. Both share this type. Use Merge to combine them.
type Title struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"` // ISO YYYY-MM-DD, kept verbatim
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"` // 0-10
	VoteCount    int     `json:"vote_count"`   // used as the booking-rate proxy
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// HasGenre reports whether the title is tagged with the genre id
func (t Title) HasGenre(id int) bool {
	return slices.Contains(t.GenreIDs, id)
}

// Merge returns detail with any field the detail response left empty
// filled in from the summary t. The detail variant wins where both are set.
func (t Title) Merge(detail Title) Title {
	if detail.ID == 0 {
		detail.ID = t.ID
	}
	if detail.Name == "" {
		detail.Name = t.Name
	}
	if detail.Overview == "" {
		detail.Overview = t.Overview
	}
	if detail.ReleaseDate == "" {
		detail.ReleaseDate = t.ReleaseDate
	}
	if detail.PosterPath == "" {
		detail.PosterPath = t.PosterPath
	}
	if detail.BackdropPath == "" {
		detail.BackdropPath = t.BackdropPath
	}
	if detail.Popularity == 0 {
		detail.Popularity = t.Popularity
	}
	if detail.VoteAverage == 0 {
		detail.VoteAverage = t.VoteAverage
	}
	if detail.VoteCount == 0 {
		detail.VoteCount = t.VoteCount
	}
	if len(detail.GenreIDs) == 0 {
		detail.GenreIDs = slices.Clone(t.GenreIDs)
	}
	return detail
}

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreSet resolves genre ids to names
type GenreSet []Genre

// Name returns the display name for id, or false when the id is unknown
func (s GenreSet) Name(id int) (string, bool) {
	for _, g := range s {
		if g.ID == id {
			return g.Name, true
		}
	}
	return "", false
}

// Visible returns the genres whose names are not in excluded, preserving order
func (s GenreSet) Visible(excluded []string) GenreSet {
	out := make(GenreSet, 0, len(s))
	for _, g := range s {
		if !slices.Contains(excluded, g.Name) {
			out = append(out, g)
		}
	}
	return out
}

// Video is a single entry from the per-title videos endpoint
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// Video types the trailer picker cares about
const (
	VideoTypeTrailer = "Trailer"
	VideoTypeTeaser  = "Teaser"
	VideoSiteYouTube = "YouTube"
)

// PickTrailer chooses the video to feature for a title: the first Trailer,
// else the first Teaser, else the first video in API order.
func PickTrailer(videos []Video) (Video, bool) {
	for _, want := range []string{VideoTypeTrailer, VideoTypeTeaser} {
		for _, v := range videos {
			if v.Type == want && v.Site == VideoSiteYouTube && v.Key != "" {
				return v, true
			}
		}
	}
	for _, v := range videos {
		if v.Key != "" {
			return v, true
		}
	}
	return Video{}, false
}
