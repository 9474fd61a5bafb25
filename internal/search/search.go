// Package search provides semantic search over generated posts,
// backed by OpenAI embeddings and a Milvus vector store.
package search

import (
	"context"
	"errors"

	"github.com/pastforward-labs/pastforward/internal/post"
)

// Common errors for search operations
var (
	ErrEmptyTexts       = errors.New("no texts provided for embedding")
	ErrEmptyQuery       = errors.New("search query is empty")
	ErrMissingAPIKey    = errors.New("OPENAI_API_KEY environment variable not set")
	ErrEmbeddingFailed  = errors.New("embedding generation failed")
	ErrInvalidDimension = errors.New("invalid vector dimension")
	ErrEmptyDocuments   = errors.New("no documents provided for insertion")
	ErrConnectionFailed = errors.New("failed to connect to Milvus")
	ErrInsertFailed     = errors.New("failed to insert documents")
	ErrSearchFailed     = errors.New("failed to search vectors")
)

// EmbeddingRecord represents a single text embedding.
type EmbeddingRecord struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
	Model     string    `json:"model"`
}

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for the provided texts
	Embed(ctx context.Context, texts []string) ([]EmbeddingRecord, error)

	// GetModel returns the embedding model identifier
	GetModel() string

	// GetDimension returns the embedding vector dimension
	GetDimension() int
}

// Document is a post projected into the fields the vector store keeps
// alongside its embedding.
type Document struct {
	PostID    string        `json:"post_id"`
	Content   string        `json:"content"`
	Era       string        `json:"era"`
	Platform  post.Platform `json:"platform"`
	Location  string        `json:"location"`
	Embedding []float32     `json:"-"`
}

// Match is a retrieved document with its similarity score.
type Match struct {
	PostID   string        `json:"post_id"`
	Content  string        `json:"content"`
	Era      string        `json:"era"`
	Platform post.Platform `json:"platform"`
	Location string        `json:"location"`
	Score    float32       `json:"score"`
}

// SearchOptions provides filtering options for vector search.
// Zero values mean no filtering.
type SearchOptions struct {
	Platform post.Platform `json:"platform,omitempty"`
	Era      string        `json:"era,omitempty"`
}

// VectorStore defines the interface for vector storage and similarity
// search over post documents.
type VectorStore interface {
	// Insert adds documents with their embeddings
	Insert(ctx context.Context, docs []Document) error

	// Search performs top-K similarity search with optional filtering
	Search(ctx context.Context, queryVector []float32, topK int, opts *SearchOptions) ([]Match, error)

	// Query checks which post IDs exist in the store
	Query(ctx context.Context, postIDs []string) (map[string]bool, error)

	// Delete removes documents by post IDs
	Delete(ctx context.Context, postIDs []string) error

	// Close releases resources and closes connections
	Close() error
}
