package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// MapGenres converts genre DTOs to domain genres
func MapGenres(dtos []GenreDTO) []domain.Genre {
	genres := make([]domain.Genre, 0, len(dtos))
	for _, g := range dtos {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}

// MapSummaries converts listing entries to domain titles, preserving API order
func MapSummaries(results []MovieSummary) []domain.Title {
	titles := make([]domain.Title, 0, len(results))
	for _, m := range results {
		titles = append(titles, domain.Title{
			ID:           m.ID,
			Name:         m.Title,
			Overview:     m.Overview,
			ReleaseDate:  m.ReleaseDate,
			PosterPath:   deref(m.PosterPath),
			BackdropPath: deref(m.BackdropPath),
			Popularity:   m.Popularity,
			VoteAverage:  m.VoteAverage,
			VoteCount:    m.VoteCount,
			GenreIDs:     m.GenreIDs,
		})
	}
	return titles
}

// MapDetail converts a detail response to the detail variant of a title
func MapDetail(m MovieDetail) domain.Title {
	ids := make([]int, 0, len(m.Genres))
	for _, g := range m.Genres {
		ids = append(ids, g.ID)
	}
	return domain.Title{
		ID:           m.ID,
		Name:         m.Title,
		Overview:     m.Overview,
		ReleaseDate:  m.ReleaseDate,
		PosterPath:   deref(m.PosterPath),
		BackdropPath: deref(m.BackdropPath),
		Popularity:   m.Popularity,
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		GenreIDs:     ids,
	}
}

// MapVideos converts video DTOs to domain videos, preserving API order
func MapVideos(dtos []VideoDTO) []domain.Video {
	videos := make([]domain.Video, 0, len(dtos))
	for _, v := range dtos {
		videos = append(videos, domain.Video{Key: v.Key, Site: v.Site, Type: v.Type, Name: v.Name})
	}
	return videos
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
