package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/domain"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres offered by the genre filter",
	Args:  cobra.NoArgs,
	RunE:  genresRun,
}

func genresRun(cmd *cobra.Command, args []string) error {
	client, release, err := openCatalog()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
	defer cancel()

	visible := domain.GenreSet(client.FetchGenres(ctx)).Visible(cfg.Catalog.ExcludedGenres)
	if len(visible) == 0 {
		fmt.Println("No genres available.")
		return nil
	}
	for _, g := range visible {
		fmt.Printf("%6d  %s\n", g.ID, g.Name)
	}
	return nil
}
