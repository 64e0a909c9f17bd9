package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultLanguage = "ko-KR"
	userAgent       = "Marquee/1.0"
)

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration

	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	Burst     int

	// Cache is consulted for the per-title endpoints only.
	Cache    domain.ResponseCache
	CacheTTL time.Duration
}

// Client implements domain.Catalog for the TMDB v3 API
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      domain.ResponseCache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

var _ domain.Catalog = (*Client)(nil)

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Language == "" {
		opts.Language = defaultLanguage
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		apiKey:   opts.APIKey,
		language: opts.Language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter:  limiter,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   logger,
	}
}

// Language returns the locale sent with every request
func (c *Client) Language() string {
	return c.language
}

// doRequest performs a GET with the credential and locale attached.
// Transport failures and non-2xx statuses wrap domain.ErrRemoteUnavailable.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "language", c.language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%s: %w", path, domain.ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", path, domain.ErrRemoteUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%s: status %d: %w", path, resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%s: decode: %w", path, domain.ErrRemoteUnavailable)
	}
	return nil
}

// FetchGenres returns the catalog's genre list. Failures degrade to an
// empty list; callers render cards without genre labels.
func (c *Client) FetchGenres(ctx context.Context) []domain.Genre {
	var resp GenreListResponse
	if err := c.getJSON(ctx, "/genre/movie/list", &resp); err != nil {
		c.logger.Error("genre lookup degraded", "error", fmt.Errorf("%w: %w", domain.ErrEnrichmentUnavailable, err))
		return nil
	}
	return MapGenres(resp.Genres)
}

// FetchNowPlaying returns the now-playing collection in API order
func (c *Client) FetchNowPlaying(ctx context.Context) ([]domain.Title, error) {
	var resp NowPlayingResponse
	if err := c.getJSON(ctx, "/movie/now_playing", &resp); err != nil {
		return nil, fmt.Errorf("fetch now playing: %w", err)
	}
	c.logger.Info("fetched now playing", "count", len(resp.Results))
	return MapSummaries(resp.Results), nil
}

// FetchDetails returns the detail variant of a title
func (c *Client) FetchDetails(ctx context.Context, id int) (domain.Title, error) {
	if c.cache != nil {
		if t, ok := c.cache.GetDetails(id, c.cacheTTL); ok {
			c.logger.Debug("details cache hit", "id", id)
			return t, nil
		}
	}

	var resp MovieDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), &resp); err != nil {
		return domain.Title{}, fmt.Errorf("fetch details %d: %w", id, err)
	}
	title := MapDetail(resp)

	if c.cache != nil {
		if err := c.cache.SaveDetails(title); err != nil {
			c.logger.Warn("failed to cache details", "id", id, "error", err)
		}
	}
	return title, nil
}

// FetchTrailerKey resolves the video key to feature for a title. A failed
// lookup is indistinguishable from "no trailer" to the caller.
func (c *Client) FetchTrailerKey(ctx context.Context, id int) (string, bool) {
	videos, err := c.fetchVideos(ctx, id)
	if err != nil {
		c.logger.Error("trailer lookup degraded", "id", id, "error", fmt.Errorf("%w: %w", domain.ErrEnrichmentUnavailable, err))
		return "", false
	}
	v, ok := domain.PickTrailer(videos)
	if !ok {
		return "", false
	}
	return v.Key, true
}

func (c *Client) fetchVideos(ctx context.Context, id int) ([]domain.Video, error) {
	if c.cache != nil {
		if videos, ok := c.cache.GetVideos(id, c.cacheTTL); ok {
			c.logger.Debug("videos cache hit", "id", id)
			return videos, nil
		}
	}

	var resp VideosResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/videos", id), &resp); err != nil {
		return nil, err
	}
	videos := MapVideos(resp.Results)

	if c.cache != nil {
		if err := c.cache.SaveVideos(id, videos); err != nil {
			c.logger.Warn("failed to cache videos", "id", id, "error", err)
		}
	}
	return videos, nil
}
