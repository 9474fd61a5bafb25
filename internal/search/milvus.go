package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/pastforward-labs/pastforward/internal/config"
	"github.com/pastforward-labs/pastforward/internal/post"
)

// MilvusConfig holds configuration for Milvus connection and collection
type MilvusConfig struct {
	Address        string // Milvus server address (e.g., "localhost:19530")
	CollectionName string // Name of the collection
	Dimension      int    // Vector dimension

	// HNSW index parameters
	M              int // HNSW M parameter (default: 16)
	EfConstruction int // HNSW efConstruction (default: 256)
}

// DefaultMilvusConfig returns default configuration from environment variables
func DefaultMilvusConfig() MilvusConfig {
	return MilvusConfig{
		Address:        config.GetEnv("MILVUS_ADDRESS", "localhost:19530"),
		CollectionName: config.GetEnv("MILVUS_COLLECTION", "pastforward_posts"),
		Dimension:      DefaultEmbeddingDimension,
		M:              16,
		EfConstruction: 256,
	}
}

// MilvusStore implements VectorStore using Milvus
type MilvusStore struct {
	client client.Client
	config MilvusConfig
}

// NewMilvusStore connects to Milvus and ensures the post collection
// exists with the expected schema.
func NewMilvusStore(ctx context.Context, cfg MilvusConfig) (*MilvusStore, error) {
	if cfg.Dimension <= 0 {
		return nil, ErrInvalidDimension
	}

	c, err := client.NewGrpcClient(ctx, cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	store := &MilvusStore{
		client: c,
		config: cfg,
	}

	if err := store.ensureCollection(ctx); err != nil {
		c.Close()
		return nil, err
	}

	return store, nil
}

// ensureCollection creates the collection with schema if it doesn't exist
func (m *MilvusStore) ensureCollection(ctx context.Context) error {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if has {
		return nil
	}

	schema := &entity.Schema{
		CollectionName: m.config.CollectionName,
		AutoID:         true,
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeInt64,
				PrimaryKey: true,
				AutoID:     true,
			},
			{
				Name:     "post_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "content",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
			{
				Name:     "era",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "256",
				},
			},
			{
				Name:     "platform",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "32",
				},
			},
			{
				Name:     "location",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "256",
				},
			},
			{
				Name:     "embedding",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", m.config.Dimension),
				},
			},
		},
	}

	if err := m.client.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	idx, err := entity.NewIndexHNSW(entity.COSINE, m.config.M, m.config.EfConstruction)
	if err != nil {
		return fmt.Errorf("failed to create index config: %w", err)
	}
	if err := m.client.CreateIndex(ctx, m.config.CollectionName, "embedding", idx, false); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if err := m.client.LoadCollection(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	return nil
}

// Insert adds post documents with their embeddings to Milvus
func (m *MilvusStore) Insert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return ErrEmptyDocuments
	}

	postIDs := make([]string, len(docs))
	contents := make([]string, len(docs))
	eras := make([]string, len(docs))
	platforms := make([]string, len(docs))
	locations := make([]string, len(docs))
	embeddings := make([][]float32, len(docs))

	for i, doc := range docs {
		if len(doc.Embedding) != m.config.Dimension {
			return fmt.Errorf("%w: expected %d, got %d for post %s",
				ErrInvalidDimension, m.config.Dimension, len(doc.Embedding), doc.PostID)
		}
		postIDs[i] = doc.PostID
		contents[i] = doc.Content
		eras[i] = doc.Era
		platforms[i] = string(doc.Platform)
		locations[i] = doc.Location
		embeddings[i] = doc.Embedding
	}

	columns := []entity.Column{
		entity.NewColumnVarChar("post_id", postIDs),
		entity.NewColumnVarChar("content", contents),
		entity.NewColumnVarChar("era", eras),
		entity.NewColumnVarChar("platform", platforms),
		entity.NewColumnVarChar("location", locations),
		entity.NewColumnFloatVector("embedding", m.config.Dimension, embeddings),
	}

	if _, err := m.client.Insert(ctx, m.config.CollectionName, "", columns...); err != nil {
		return fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}

	if err := m.client.Flush(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to flush data: %w", err)
	}

	return nil
}

// Search performs top-K similarity search with optional filtering
func (m *MilvusStore) Search(ctx context.Context, queryVector []float32, topK int, opts *SearchOptions) ([]Match, error) {
	if len(queryVector) != m.config.Dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d",
			ErrInvalidDimension, m.config.Dimension, len(queryVector))
	}

	expr := filterExpr(opts)

	sp, err := entity.NewIndexHNSWSearchParam(64) // ef parameter for search
	if err != nil {
		return nil, fmt.Errorf("failed to create search params: %w", err)
	}

	vectors := []entity.Vector{entity.FloatVector(queryVector)}
	outputFields := []string{"post_id", "content", "era", "platform", "location"}

	results, err := m.client.Search(
		ctx,
		m.config.CollectionName,
		nil, // partition names
		expr,
		outputFields,
		vectors,
		"embedding",
		entity.COSINE,
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	if len(results) == 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, results[0].ResultCount)
	for i := 0; i < results[0].ResultCount; i++ {
		match := Match{Score: results[0].Scores[i]}

		for _, field := range results[0].Fields {
			col, ok := field.(*entity.ColumnVarChar)
			if !ok {
				continue
			}
			switch field.Name() {
			case "post_id":
				match.PostID = col.Data()[i]
			case "content":
				match.Content = col.Data()[i]
			case "era":
				match.Era = col.Data()[i]
			case "platform":
				match.Platform = post.Platform(col.Data()[i])
			case "location":
				match.Location = col.Data()[i]
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// Query checks which post IDs exist in the store
func (m *MilvusStore) Query(ctx context.Context, postIDs []string) (map[string]bool, error) {
	if len(postIDs) == 0 {
		return map[string]bool{}, nil
	}

	results, err := m.client.Query(
		ctx,
		m.config.CollectionName,
		nil, // partition names
		idExpr(postIDs),
		[]string{"post_id"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	existenceMap := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		existenceMap[id] = false
	}
	for _, column := range results {
		if column.Name() != "post_id" {
			continue
		}
		if varcharCol, ok := column.(*entity.ColumnVarChar); ok {
			for _, id := range varcharCol.Data() {
				existenceMap[id] = true
			}
		}
	}

	return existenceMap, nil
}

// Delete removes documents by post IDs
func (m *MilvusStore) Delete(ctx context.Context, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}

	if err := m.client.Delete(ctx, m.config.CollectionName, "", idExpr(postIDs)); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}

	return nil
}

// Close releases resources and closes the Milvus connection
func (m *MilvusStore) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// idExpr builds a boolean expression matching any of the given post IDs.
func idExpr(postIDs []string) string {
	terms := make([]string, len(postIDs))
	for i, id := range postIDs {
		terms[i] = fmt.Sprintf(`post_id == "%s"`, id)
	}
	return strings.Join(terms, " or ")
}

// filterExpr builds the search filter from options.
func filterExpr(opts *SearchOptions) string {
	if opts == nil {
		return ""
	}
	var terms []string
	if opts.Platform != "" {
		terms = append(terms, fmt.Sprintf(`platform == "%s"`, opts.Platform))
	}
	if opts.Era != "" {
		terms = append(terms, fmt.Sprintf(`era == "%s"`, opts.Era))
	}
	return strings.Join(terms, " and ")
}
