package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pastforward-labs/pastforward/internal/config"
	"github.com/pastforward-labs/pastforward/internal/search"
	"github.com/pastforward-labs/pastforward/internal/store"
)

// defaultDBPath resolves the SQLite location: PASTFORWARD_DB_PATH when
// set, otherwise ~/.pastforward/pastforward.db.
func defaultDBPath() (string, error) {
	if path := config.GetEnv("PASTFORWARD_DB_PATH", ""); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".pastforward", "pastforward.db"), nil
}

func openStore() (*store.Store, error) {
	path, err := defaultDBPath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// newSearcher builds the semantic search stack. Requires OPENAI_API_KEY
// for embeddings and a reachable Milvus instance.
func newSearcher(ctx context.Context) (*search.Indexer, error) {
	embedder, err := search.NewOpenAIEmbedder(search.DefaultEmbeddingModel, search.DefaultEmbeddingDimension)
	if err != nil {
		return nil, err
	}

	vectors, err := search.NewMilvusStore(ctx, search.DefaultMilvusConfig())
	if err != nil {
		return nil, err
	}

	return search.NewIndexer(embedder, vectors)
}
