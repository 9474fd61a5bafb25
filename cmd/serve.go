package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pastforward-labs/pastforward/internal/config"
	"github.com/pastforward-labs/pastforward/internal/generate"
	"github.com/pastforward-labs/pastforward/internal/llm"
	"github.com/pastforward-labs/pastforward/internal/logging"
	"github.com/pastforward-labs/pastforward/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the PastForward HTTP API",
	Long: `Run the HTTP API serving post generation, the saved-post library and
semantic search.

Semantic search needs OPENAI_API_KEY for embeddings and a reachable
Milvus instance (MILVUS_ADDRESS). When either is missing the server
starts without it and the search endpoint reports the feature as
unavailable.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default $ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := logging.NewLogger()
	config.LoadEnv(logger)

	addr := serveAddr
	if addr == "" {
		addr = config.GetEnv("ADDR", ":8080")
	}

	invoker, err := llm.NewInvokerFromEnv(ctx, logger)
	if errors.Is(err, llm.ErrNoProvider) {
		return fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY or OPENAI_API_KEY")
	}
	if err != nil {
		return err
	}

	pipeline, err := generate.NewPipeline(invoker, logger)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var searcher server.Searcher
	if indexer, err := newSearcher(ctx); err != nil {
		logger.WithError(err).Warn("Semantic search disabled")
	} else {
		searcher = indexer
	}

	return server.New(pipeline, st, searcher, logger).Run(addr)
}
