package tmdb

// GenreListResponse is the body of GET /genre/movie/list
type GenreListResponse struct {
	Genres []GenreDTO `json:"genres"`
}

// GenreDTO is a single genre entry
type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NowPlayingResponse is the body of GET /movie/now_playing
type NowPlayingResponse struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []MovieSummary `json:"results"`
}

// MovieSummary is a listing entry. Genres arrive as bare ids.
type MovieSummary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int   `json:"genre_ids"`
}

// MovieDetail is the body of GET /movie/{id}. Genres arrive as objects.
type MovieDetail struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Overview     string     `json:"overview"`
	ReleaseDate  string     `json:"release_date"`
	PosterPath   *string    `json:"poster_path"`
	BackdropPath *string    `json:"backdrop_path"`
	Popularity   float64    `json:"popularity"`
	VoteAverage  float64    `json:"vote_average"`
	VoteCount    int        `json:"vote_count"`
	Genres       []GenreDTO `json:"genres"`
	Runtime      int        `json:"runtime"`
	Tagline      string     `json:"tagline"`
}

// VideosResponse is the body of GET /movie/{id}/videos
type VideosResponse struct {
	ID      int        `json:"id"`
	Results []VideoDTO `json:"results"`
}

// VideoDTO is a single video entry
type VideoDTO struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}
