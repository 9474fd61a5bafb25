package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pastforward-labs/pastforward/internal/post"
)

// StoredPost is a persisted post together with the parameters that
// produced it and its sharing state.
type StoredPost struct {
	ID            string        `json:"id"`
	Era           string        `json:"era"`
	Location      string        `json:"location"`
	CharacterType string        `json:"characterType"`
	Creativity    int           `json:"creativity"`
	Public        bool          `json:"public"`
	CreatedAt     time.Time     `json:"createdAt"`
	Post          post.Post     `json:"post"`
	Platform      post.Platform `json:"platform"`
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Platform   post.Platform
	Era        string
	PublicOnly bool
	Limit      int
}

const postColumns = `id, era, location, character_type, creativity, platform,
	username, handle, verified, post_date, post_location, title, content,
	hashtags_json, avatar, image, likes, comments, retweets, replies,
	subreddit, upvotes, awards_json, public, created_at`

// Save persists a generated post and returns its assigned ID.
func (s *Store) Save(ctx context.Context, params post.GenerationParams, p post.Post) (*StoredPost, error) {
	hashtags, err := json.Marshal(p.Hashtags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hashtags: %w", err)
	}
	var awards []byte
	if p.Awards != nil {
		if awards, err = json.Marshal(p.Awards); err != nil {
			return nil, fmt.Errorf("failed to encode awards: %w", err)
		}
	}

	sp := &StoredPost{
		ID:            uuid.NewString(),
		Era:           params.Era,
		Location:      params.Location,
		CharacterType: params.CharacterType,
		Creativity:    params.Creativity,
		CreatedAt:     time.Now().UTC(),
		Post:          p,
		Platform:      p.Platform,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.Era, sp.Location, sp.CharacterType, sp.Creativity, string(p.Platform),
		p.Username, p.Handle, boolToInt(p.Verified), p.Date, p.Location, p.Title, p.Content,
		string(hashtags), p.Avatar, p.Image, p.Likes, p.Comments, p.Retweets, p.Replies,
		p.Subreddit, p.Upvotes, nullableString(awards), 0, sp.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return sp, nil
}

// Get retrieves a single post by ID.
func (s *Store) Get(ctx context.Context, id string) (*StoredPost, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// List returns posts matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*StoredPost, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	var conds []string
	var args []any

	if filter.Platform != "" {
		conds = append(conds, "platform = ?")
		args = append(args, string(filter.Platform))
	}
	if filter.Era != "" {
		conds = append(conds, "era = ?")
		args = append(args, filter.Era)
	}
	if filter.PublicOnly {
		conds = append(conds, "public = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*StoredPost
	for rows.Next() {
		sp, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, sp)
	}
	return posts, rows.Err()
}

// SetPublic flips the sharing state of a post.
func (s *Store) SetPublic(ctx context.Context, id string, public bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET public = ? WHERE id = ?`, boolToInt(public), id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a post.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return requireAffected(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*StoredPost, error) {
	var (
		sp               StoredPost
		platform         string
		verified, public int
		createdAt        int64
		hashtags         string
		awards           sql.NullString
	)
	err := row.Scan(
		&sp.ID, &sp.Era, &sp.Location, &sp.CharacterType, &sp.Creativity, &platform,
		&sp.Post.Username, &sp.Post.Handle, &verified, &sp.Post.Date, &sp.Post.Location,
		&sp.Post.Title, &sp.Post.Content, &hashtags, &sp.Post.Avatar, &sp.Post.Image,
		&sp.Post.Likes, &sp.Post.Comments, &sp.Post.Retweets, &sp.Post.Replies,
		&sp.Post.Subreddit, &sp.Post.Upvotes, &awards, &public, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}

	sp.Platform = post.Platform(platform)
	sp.Post.Platform = sp.Platform
	sp.Post.Verified = verified != 0
	sp.Public = public != 0
	sp.CreatedAt = time.Unix(createdAt, 0).UTC()

	if hashtags != "" {
		if err := json.Unmarshal([]byte(hashtags), &sp.Post.Hashtags); err != nil {
			return nil, fmt.Errorf("failed to decode hashtags: %w", err)
		}
	}
	if awards.Valid && awards.String != "" {
		if err := json.Unmarshal([]byte(awards.String), &sp.Post.Awards); err != nil {
			return nil, fmt.Errorf("failed to decode awards: %w", err)
		}
	}
	return &sp, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
