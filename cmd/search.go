package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrazzz/redgifs-go/filter"
	"github.com/scrazzz/redgifs-go/redgifs"
	"github.com/scrazzz/redgifs-go/tags"
)

var (
	filterExpr  string
	searchOrder string
	searchCount int
	searchPage  int
	imageSearch bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the RedGifs library",
	Long: `Search RedGifs for media matching the given text. Free text is resolved
to the closest known tag before searching. Results can be narrowed further
with a filter expression, e.g.:

  redgifs search "funny cats" --filter 'Views > 1000 and HasAudio'`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to results")
	searchCmd.Flags().StringVar(&searchOrder, "order", tags.OrderRecent, "result order (recent, trending, top, latest)")
	searchCmd.Flags().IntVar(&searchCount, "count", 20, "number of results to request")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "page number (1-indexed)")
	searchCmd.Flags().BoolVar(&imageSearch, "images", false, "search still images instead of gifs")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	defer client.Close()

	opts := redgifs.SearchOptions{
		Order: searchOrder,
		Count: searchCount,
		Page:  searchPage,
	}

	var (
		result *redgifs.SearchResult
		err    error
	)
	if imageSearch {
		result, err = client.SearchImage(ctx, tags.Raw(args[0]), opts)
	} else {
		result, err = client.Search(ctx, tags.Raw(args[0]), opts)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Str("searched", string(result.Searched)).
		Int("total", result.Total).
		Msg("Search complete")

	gifs := result.GIFs
	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		gifs = f.Apply(gifs)
	}

	if len(gifs) == 0 {
		fmt.Println("No results.")
		return nil
	}

	fmt.Printf("\nFound %d results (page %d of %d, %d total):\n", len(gifs), result.Page, result.Pages, result.Total)
	fmt.Println(strings.Repeat("-", 80))

	for _, gif := range gifs {
		fmt.Printf("• %s by %s", gif.ID, gif.Username)
		if gif.Verified {
			fmt.Printf(" [VERIFIED]")
		}
		fmt.Println()
		fmt.Printf("  %s\n", gif.URLs.Web)
		fmt.Printf("  %dx%d, %.1fs, %d views, %d likes\n", gif.Width, gif.Height, gif.Duration, gif.Views, gif.Likes)
		if len(gif.Tags) > 0 {
			fmt.Printf("  Tags: %s\n", strings.Join(gif.Tags, ", "))
		}
	}

	return nil
}
