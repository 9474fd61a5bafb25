package search

import (
	"context"
	"fmt"

	"github.com/pastforward-labs/pastforward/internal/store"
)

// IndexOptions provides configuration for post indexing.
type IndexOptions struct {
	// BatchSize determines how many posts to embed at once
	BatchSize int

	// SkipExisting skips posts already present in the vector store
	SkipExisting bool
}

// DefaultIndexOptions returns sensible defaults for indexing.
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{
		BatchSize:    10,
		SkipExisting: true,
	}
}

// Indexer embeds stored posts and maintains them in the vector store.
type Indexer struct {
	embedder Embedder
	vectors  VectorStore
}

// NewIndexer creates an indexer over the given embedder and store.
func NewIndexer(embedder Embedder, vectors VectorStore) (*Indexer, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if vectors == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}
	return &Indexer{embedder: embedder, vectors: vectors}, nil
}

// IndexPosts embeds the given posts in batches and inserts them into
// the vector store.
func (ix *Indexer) IndexPosts(ctx context.Context, posts []*store.StoredPost, opts IndexOptions) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultIndexOptions().BatchSize
	}

	if opts.SkipExisting {
		ids := make([]string, len(posts))
		for i, sp := range posts {
			ids[i] = sp.ID
		}
		existing, err := ix.vectors.Query(ctx, ids)
		if err != nil {
			return 0, fmt.Errorf("failed to check existing posts: %w", err)
		}
		fresh := posts[:0:0]
		for _, sp := range posts {
			if !existing[sp.ID] {
				fresh = append(fresh, sp)
			}
		}
		posts = fresh
	}

	indexed := 0
	for start := 0; start < len(posts); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > len(posts) {
			end = len(posts)
		}
		batch := posts[start:end]

		texts := make([]string, len(batch))
		for i, sp := range batch {
			texts[i] = DocumentText(sp)
		}

		records, err := ix.embedder.Embed(ctx, texts)
		if err != nil {
			return indexed, fmt.Errorf("failed to embed batch: %w", err)
		}
		if len(records) != len(batch) {
			return indexed, fmt.Errorf("embedder returned %d records for %d texts", len(records), len(batch))
		}

		docs := make([]Document, len(batch))
		for i, sp := range batch {
			docs[i] = Document{
				PostID:    sp.ID,
				Content:   sp.Post.Content,
				Era:       sp.Era,
				Platform:  sp.Platform,
				Location:  sp.Location,
				Embedding: records[i].Embedding,
			}
		}

		if err := ix.vectors.Insert(ctx, docs); err != nil {
			return indexed, fmt.Errorf("failed to insert batch: %w", err)
		}
		indexed += len(batch)
	}

	return indexed, nil
}

// Remove drops the given posts from the vector store.
func (ix *Indexer) Remove(ctx context.Context, postIDs []string) error {
	return ix.vectors.Delete(ctx, postIDs)
}

// Search embeds a free-text query and returns the topK most similar
// posts.
func (ix *Indexer) Search(ctx context.Context, query string, topK int, opts *SearchOptions) ([]Match, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	records, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no embedding generated for query")
	}

	return ix.vectors.Search(ctx, records[0].Embedding, topK, opts)
}

// DocumentText flattens a stored post into the text that gets
// embedded. Era, archetype and location ride along with the content
// so thematic queries match on setting as well as wording.
func DocumentText(sp *store.StoredPost) string {
	text := fmt.Sprintf("%s | %s | %s: %s", sp.Era, sp.Location, sp.CharacterType, sp.Post.Content)
	if sp.Post.Title != "" {
		text = fmt.Sprintf("%s | %s | %s: %s. %s", sp.Era, sp.Location, sp.CharacterType, sp.Post.Title, sp.Post.Content)
	}
	return text
}
