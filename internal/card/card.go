// Package card turns catalog titles into display-ready card fields.
package card

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// Placeholder strings shown when a field is missing
const (
	UntitledPlaceholder = "제목 없음"
	NoPosterText        = "포스터 없음"
)

const maxGenres = 2

// Images holds the URL prefixes for catalog artwork
type Images struct {
	PosterBase   string
	BackdropBase string
	Placeholder  string
}

// DefaultImages points at the public TMDB image CDN
var DefaultImages = Images{
	PosterBase:   "https://image.tmdb.org/t/p/w500",
	BackdropBase: "https://image.tmdb.org/t/p/original",
	Placeholder:  "https://via.placeholder.com/500x750?text=No+Poster",
}

// PosterURL returns the full poster URL, or the placeholder for an empty path
func (im Images) PosterURL(path string) string {
	if path == "" {
		return im.Placeholder
	}
	return im.PosterBase + path
}

// BackdropURL returns the full backdrop URL, or "" for an empty path
func (im Images) BackdropURL(path string) string {
	if path == "" {
		return ""
	}
	return im.BackdropBase + path
}

// Card is the rendered form of a title
type Card struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`   // YYYY.MM.DD, verbatim if unparseable, empty if absent
	Genres    string `json:"genres"` // up to two names, comma-joined
	Rating    string `json:"rating"` // one decimal
	PosterURL string `json:"poster_url"`
	HasPoster bool   `json:"has_poster"`
}

// Render renders a title using DefaultImages
func Render(t domain.Title, genres domain.GenreSet) Card {
	return DefaultImages.Render(t, genres)
}

// Render builds the card for t. It is pure: same inputs, same card.
func (im Images) Render(t domain.Title, genres domain.GenreSet) Card {
	name := t.Name
	if name == "" {
		name = UntitledPlaceholder
	}
	return Card{
		ID:        t.ID,
		Title:     name,
		Date:      FormatDate(t.ReleaseDate),
		Genres:    GenreNames(t.GenreIDs, genres),
		Rating:    FormatRating(t.VoteAverage),
		PosterURL: im.PosterURL(t.PosterPath),
		HasPoster: t.PosterPath != "",
	}
}

// FormatRating renders a 0-10 average with one decimal, half away from zero.
// Absent ratings arrive as zero and render as "0.0".
func FormatRating(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", math.Round(v*10)/10)
}

// FormatDate converts YYYY-MM-DD to YYYY.MM.DD
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return d.Format("2006.01.02")
}

// GenreNames resolves the first two genre ids to names. Unknown ids are
// dropped rather than replaced, so the result may hold fewer than two.
func GenreNames(ids []int, genres domain.GenreSet) string {
	if len(ids) > maxGenres {
		ids = ids[:maxGenres]
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genres.Name(id); ok && name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
