package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pastforward-labs/pastforward/internal/post"
	"github.com/pastforward-labs/pastforward/internal/search"
	"github.com/pastforward-labs/pastforward/internal/store"
)

var (
	searchTopK     int
	searchPlatform string
	searchEra      string
	searchReindex  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantic search over saved posts",
	Long: `Search the saved-post library by meaning rather than keywords.

Posts are embedded with OpenAI and indexed in Milvus. The library is
indexed on demand, so new posts are searchable without a separate step.

Required environment variables:
  OPENAI_API_KEY  - OpenAI API key for embeddings
  MILVUS_ADDRESS  - Milvus server address (default: localhost:19530)

Examples:
  pastforward search "daily life under the plague"
  pastforward search "political intrigue" --platform twitter --topk 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchTopK, "topk", 5, "Number of matches to return")
	searchCmd.Flags().StringVar(&searchPlatform, "platform", "", "Only match posts for one platform")
	searchCmd.Flags().StringVar(&searchEra, "era", "", "Only match posts for one era")
	searchCmd.Flags().BoolVar(&searchReindex, "reindex", false, "Re-embed every saved post before searching")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	opts := &search.SearchOptions{Era: searchEra}
	if searchPlatform != "" {
		platform, err := post.ParsePlatform(searchPlatform)
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		opts.Platform = platform
	}

	indexer, err := newSearcher(ctx)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	posts, err := st.List(ctx, store.ListFilter{})
	if err != nil {
		return err
	}

	indexOpts := search.DefaultIndexOptions()
	indexOpts.SkipExisting = !searchReindex
	if _, err := indexer.IndexPosts(ctx, posts, indexOpts); err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	matches, err := indexer.Search(ctx, query, searchTopK, opts)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if len(matches) == 0 {
		fmt.Println(metaStyle.Render("No matching posts."))
		return nil
	}

	fmt.Println()
	fmt.Println(nameStyle.Render(fmt.Sprintf("Top %d matches:", len(matches))))
	for i, match := range matches {
		fmt.Println()
		fmt.Println(metaStyle.Render(fmt.Sprintf("%d. %s · %s · %s · score %.2f",
			i+1, match.PostID, match.Era, match.Platform, match.Score)))
		fmt.Println(contentStyle.Render("   " + strings.TrimSpace(match.Content)))
	}
	fmt.Println()

	return nil
}
