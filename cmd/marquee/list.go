package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/card"
	"github.com/mmcdole/marquee/internal/listing"
)

var (
	flagSort  string
	flagGenre int
	flagJSON  bool
)

// fetchTimeout bounds one non-interactive fetch cycle
const fetchTimeout = 30 * time.Second

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the movies now playing",
	Args:  cobra.NoArgs,
	RunE:  listRun,
}

func init() {
	listCmd.Flags().StringVarP(&flagSort, "sort", "s", "original", "Sort order: original | popularity | booking")
	listCmd.Flags().IntVarP(&flagGenre, "genre", "g", 0, "Only show this genre id (see 'marquee genres')")
	listCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Output cards as JSON")
}

func listRun(cmd *cobra.Command, args []string) error {
	mode, ok := listing.ParseSortMode(flagSort)
	if !ok {
		return fmt.Errorf("unknown sort %q (valid: original, popularity, booking)", flagSort)
	}

	client, release, err := openCatalog()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
	defer cancel()

	titles, err := client.FetchNowPlaying(ctx)
	if err != nil {
		return fmt.Errorf("getting now playing: %w", err)
	}
	genres := client.FetchGenres(ctx)

	state := listing.New()
	state.SetAll(titles)
	state.SetSortMode(mode)
	if flagGenre != 0 {
		state.SetGenreFilter(listing.OnlyGenre(flagGenre))
	}

	view := state.DerivedView()
	cards := make([]card.Card, len(view))
	im := images()
	for i, t := range view {
		cards[i] = im.Render(t, genres)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	if len(cards) == 0 {
		fmt.Println("표시할 영화가 없습니다.")
		return nil
	}

	fmt.Printf("%s\n\n", formatHeading(mode, len(cards)))
	for i, c := range cards {
		fmt.Println(formatCardLine(i+1, c))
	}
	return nil
}

// formatHeading names the section in both languages, since piped output
// may be read where Hangul does not render
func formatHeading(mode listing.SortMode, count int) string {
	return fmt.Sprintf("%s / %s (%d)", mode.Label(), mode.EnglishLabel(), count)
}

// formatCardLine renders one card as a single plain-text line
func formatCardLine(rank int, c card.Card) string {
	parts := []string{fmt.Sprintf("%3d. %s", rank, c.Title), "★ " + c.Rating}
	if c.Date != "" {
		parts = append(parts, c.Date)
	}
	if c.Genres != "" {
		parts = append(parts, c.Genres)
	}
	return strings.Join(parts, "  ·  ")
}
