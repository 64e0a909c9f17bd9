package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlayerBackend identifies how trailers are embedded
type PlayerBackend string

const (
	PlayerBackendMPV  PlayerBackend = "mpv"
	PlayerBackendNone PlayerBackend = "none"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Player   PlayerConfig   `mapstructure:"player"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig holds catalog API configuration
type CatalogConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Language          string        `mapstructure:"language"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RateLimit         float64       `mapstructure:"rate_limit"` // requests per second
	Burst             int           `mapstructure:"burst"`
	ExcludedGenres    []string      `mapstructure:"excluded_genres"` // hidden from the genre picker
	PosterBaseURL     string        `mapstructure:"poster_base_url"`
	BackdropBaseURL   string        `mapstructure:"backdrop_base_url"`
	PosterPlaceholder string        `mapstructure:"poster_placeholder"`
}

// PlayerConfig holds trailer player configuration
type PlayerConfig struct {
	Backend PlayerBackend `mapstructure:"backend"`
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
}

// BrowserConfig holds the command used to open outbound links.
// An empty command uses the system default handler.
type BrowserConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// PlaybackConfig holds the autoplay negotiation schedule
type PlaybackConfig struct {
	Autoplay       bool          `mapstructure:"autoplay"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	PollAttempts   int           `mapstructure:"poll_attempts"`
	UnmuteInterval time.Duration `mapstructure:"unmute_interval"`
	UnmuteAttempts int           `mapstructure:"unmute_attempts"`
}

// CacheConfig holds the per-title response cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:   "https://api.themoviedb.org/3",
			Language:  "ko-KR",
			Timeout:   15 * time.Second,
			RateLimit: 20,
			Burst:     4,
			ExcludedGenres: []string{
				"역사", "음악", "전쟁", "서부", "TV 영화",
				"History", "Music", "War", "Western", "TV Movie",
			},
			PosterBaseURL:     "https://image.tmdb.org/t/p/w500",
			BackdropBaseURL:   "https://image.tmdb.org/t/p/original",
			PosterPlaceholder: "https://via.placeholder.com/500x750?text=No+Poster",
		},
		Player: PlayerConfig{
			Backend: PlayerBackendMPV,
			Command: "mpv",
			Args:    []string{},
		},
		Playback: PlaybackConfig{
			Autoplay:       true,
			PollInterval:   200 * time.Millisecond,
			PollAttempts:   10,
			UnmuteInterval: 300 * time.Millisecond,
			UnmuteAttempts: 10,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCachePath(),
			TTL:     6 * time.Hour,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".cache", "marquee")
	}
}

// LoadConfig loads configuration from file and environment.
// An explicit path overrides the default search locations.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. MARQUEE_CATALOG_API_KEY
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// bindEnv registers the keys AutomaticEnv should resolve even when they are
// absent from the config file. Viper only consults the environment for keys
// it already knows about.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"catalog.api_key",
		"catalog.base_url",
		"catalog.language",
		"player.backend",
		"player.command",
		"browser.command",
		"playback.autoplay",
		"cache.enabled",
		"cache.dir",
		"logging.file",
		"logging.level",
	} {
		_ = v.BindEnv(key)
	}
}

// Validate checks config values are within acceptable bounds
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		return fmt.Errorf("catalog base URL cannot be empty")
	}
	switch c.Player.Backend {
	case PlayerBackendMPV, PlayerBackendNone:
	default:
		return fmt.Errorf("unsupported player backend %q (valid: mpv, none)", c.Player.Backend)
	}
	if c.Player.Backend == PlayerBackendMPV && c.Player.Command == "" {
		return fmt.Errorf("player command cannot be empty for the mpv backend")
	}
	if c.Playback.PollInterval <= 0 || c.Playback.UnmuteInterval <= 0 {
		return fmt.Errorf("playback intervals must be positive")
	}
	if c.Playback.PollAttempts <= 0 || c.Playback.UnmuteAttempts <= 0 {
		return fmt.Errorf("playback attempt counts must be positive")
	}
	if c.Catalog.RateLimit <= 0 || c.Catalog.Burst <= 0 {
		return fmt.Errorf("catalog rate limit and burst must be positive")
	}
	return nil
}

// IsConfigured returns true if a catalog API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Catalog.APIKey) != ""
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	return defaultConfigPath()
}
