package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/card"
	"github.com/mmcdole/marquee/internal/catalog/tmdb"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/featured"
	"github.com/mmcdole/marquee/internal/launcher"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig   string
	flagAPIKey   string
	flagLanguage string
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse movies now in theaters",
	Long: `Marquee lists the movies now playing in theaters, sorted and filtered
by genre, with a featured title whose trailer plays in mpv.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              rootRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: "+config.ConfigDir()+"/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Catalog API key")
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "Catalog language (default: ko-KR)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration, then sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagAPIKey != "" {
		cfg.Catalog.APIKey = flagAPIKey
	}
	if flagLanguage != "" {
		cfg.Catalog.Language = flagLanguage
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = log.SetupLogger(&cfg.Logging, log.Options{Debug: flagDebug, Version: Version})
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	return nil
}

// rootRun starts the TUI, or prints the listing when not on a terminal.
func rootRun(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Info("not a terminal, printing listing")
		return listRun(cmd, args)
	}
	return runTUI()
}

func images() card.Images {
	return card.Images{
		PosterBase:   cfg.Catalog.PosterBaseURL,
		BackdropBase: cfg.Catalog.BackdropBaseURL,
		Placeholder:  cfg.Catalog.PosterPlaceholder,
	}
}

// openCatalog builds the catalog client. The returned func releases the
// response cache.
func openCatalog() (*tmdb.Client, func(), error) {
	if !cfg.IsConfigured() {
		return nil, nil, fmt.Errorf("%w: set catalog.api_key in %s/config.yaml, MARQUEE_CATALOG_API_KEY or --api-key",
			domain.ErrNotConfigured, config.ConfigDir())
	}

	var cache domain.ResponseCache
	release := func() {}
	if cfg.Cache.Enabled {
		rc, err := store.NewResponseCache(cfg.Cache.Dir, cfg.Catalog.BaseURL, cfg.Catalog.Language)
		if err != nil {
			// Another instance may hold the lock; run uncached
			logger.Warn("response cache unavailable", "dir", cfg.Cache.Dir, "error", err)
		} else {
			cache = rc
			release = func() {
				if err := rc.Close(); err != nil {
					logger.Warn("failed to close response cache", "error", err)
				}
			}
		}
	}

	client := tmdb.NewClient(tmdb.Options{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		Language:  cfg.Catalog.Language,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
		Burst:     cfg.Catalog.Burst,
		Cache:     cache,
		CacheTTL:  cfg.Cache.TTL,
	}, logger)
	return client, release, nil
}

func runTUI() error {
	client, release, err := openCatalog()
	if err != nil {
		return err
	}
	defer release()

	factory, err := playback.NewFactory(cfg.Player, logger)
	if err != nil {
		return fmt.Errorf("creating trailer player: %w", err)
	}

	changes := make(chan playback.Change, 64)
	boot := playback.NewBootstrap(playback.Options{
		Factory:  factory,
		Timing:   playback.TimingFromConfig(cfg.Playback),
		Observer: tui.NewChannelObserver(changes),
		Logger:   logger,
	})

	presenter := featured.New(client, images(), boot, logger)
	defer presenter.Close()

	model := tui.NewModel(tui.Deps{
		Catalog:        client,
		Presenter:      presenter,
		Trailers:       boot,
		Opener:         launcher.New(cfg.Browser.Command, cfg.Browser.Args, logger),
		Images:         images(),
		ExcludedGenres: cfg.Catalog.ExcludedGenres,
		Playback:       changes,
		Logger:         logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	logger.Info("starting TUI", "version", Version, "embedding", boot.Enabled())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
