package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pastforward-labs/pastforward/internal/post"
	"github.com/pastforward-labs/pastforward/internal/search"
	"github.com/pastforward-labs/pastforward/internal/store"
)

const defaultSearchLimit = 10

// GenerateRequest is the body of POST /api/posts/generate. Creativity
// is a pointer so an omitted value can default without colliding with
// a legitimate zero.
type GenerateRequest struct {
	Era           string `json:"era"`
	Location      string `json:"location"`
	CharacterType string `json:"characterType"`
	Platform      string `json:"platform"`
	CustomPrompt  string `json:"customPrompt"`
	GenerateImage bool   `json:"generateImage"`
	Creativity    *int   `json:"creativity"`
	Save          bool   `json:"save"`
}

// GenerateResponse carries the generated post, plus its ID when the
// request asked for persistence.
type GenerateResponse struct {
	ID   string    `json:"id,omitempty"`
	Post post.Post `json:"post"`
}

// VisibilityRequest is the body of PATCH /api/posts/:id/visibility.
type VisibilityRequest struct {
	Public *bool `json:"public"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	platform, err := post.ParsePlatform(req.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creativity := 50
	if req.Creativity != nil {
		creativity = *req.Creativity
	}

	params := post.GenerationParams{
		Era:           req.Era,
		Location:      req.Location,
		CharacterType: req.CharacterType,
		Platform:      platform,
		CustomPrompt:  req.CustomPrompt,
		GenerateImage: req.GenerateImage,
		Creativity:    creativity,
	}

	result, err := s.pipeline.Generate(c.Request.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, post.ErrInvalidPlatform) || errors.Is(err, post.ErrInvalidCreativity) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := GenerateResponse{Post: result}

	if req.Save {
		saved, err := s.store.Save(c.Request.Context(), params, result)
		if err != nil {
			s.logger.WithError(err).Error("Failed to persist generated post")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save post"})
			return
		}
		resp.ID = saved.ID
		s.indexSaved(c, saved)
	}

	c.JSON(http.StatusOK, resp)
}

// indexSaved pushes a freshly saved post into the vector store.
// Indexing failures are logged, not surfaced: the post is already
// persisted and search is a secondary concern.
func (s *Server) indexSaved(c *gin.Context, saved *store.StoredPost) {
	if s.searcher == nil {
		return
	}
	if _, err := s.searcher.IndexPosts(c.Request.Context(), []*store.StoredPost{saved}, search.DefaultIndexOptions()); err != nil {
		s.logger.WithFields(logrus.Fields{
			"post_id": saved.ID,
			"error":   err.Error(),
		}).Warn("Failed to index post for search")
	}
}

func (s *Server) handleList(c *gin.Context) {
	filter := store.ListFilter{
		Era:   c.Query("era"),
		Limit: intQuery(c, "limit", 0),
	}
	if raw := c.Query("platform"); raw != "" {
		platform, err := post.ParsePlatform(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Platform = platform
	}

	posts, err := s.store.List(c.Request.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	if posts == nil {
		posts = []*store.StoredPost{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) handlePublicList(c *gin.Context) {
	posts, err := s.store.List(c.Request.Context(), store.ListFilter{
		PublicOnly: true,
		Limit:      intQuery(c, "limit", 0),
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to list public posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	if posts == nil {
		posts = []*store.StoredPost{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) handleGet(c *gin.Context) {
	sp, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		s.logger.WithError(err).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch post"})
		return
	}
	c.JSON(http.StatusOK, sp)
}

func (s *Server) handleVisibility(c *gin.Context) {
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Public == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "public field is required"})
		return
	}

	id := c.Param("id")
	if err := s.store.SetPublic(c.Request.Context(), id, *req.Public); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		s.logger.WithError(err).Error("Failed to update visibility")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "public": *req.Public})
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		s.logger.WithError(err).Error("Failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	if s.searcher != nil {
		if err := s.searcher.Remove(c.Request.Context(), []string{id}); err != nil {
			s.logger.WithError(err).Warn("Failed to remove post from search index")
		}
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleSearch(c *gin.Context) {
	if s.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	opts := &search.SearchOptions{Era: c.Query("era")}
	if raw := c.Query("platform"); raw != "" {
		platform, err := post.ParsePlatform(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.Platform = platform
	}

	matches, err := s.searcher.Search(c.Request.Context(), query, intQuery(c, "limit", defaultSearchLimit), opts)
	if err != nil {
		s.logger.WithError(err).Error("Search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if matches == nil {
		matches = []search.Match{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
