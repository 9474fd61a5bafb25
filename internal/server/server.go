// Package server exposes the generation pipeline and post store over
// an HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pastforward-labs/pastforward/internal/post"
	"github.com/pastforward-labs/pastforward/internal/search"
	"github.com/pastforward-labs/pastforward/internal/store"
)

// Generator is the slice of the generation pipeline the server needs.
type Generator interface {
	Generate(ctx context.Context, params post.GenerationParams) (post.Post, error)
}

// Searcher runs semantic queries over indexed posts. Optional: when
// nil the search endpoint reports the feature as unavailable.
type Searcher interface {
	Search(ctx context.Context, query string, topK int, opts *search.SearchOptions) ([]search.Match, error)
	IndexPosts(ctx context.Context, posts []*store.StoredPost, opts search.IndexOptions) (int, error)
	Remove(ctx context.Context, postIDs []string) error
}

// Server wires handlers, persistence and the pipeline behind a gin
// router.
type Server struct {
	router   *gin.Engine
	pipeline Generator
	store    *store.Store
	searcher Searcher
	logger   *logrus.Logger
}

// New builds the server and registers all routes. The searcher may be
// nil when no vector store is configured.
func New(pipeline Generator, st *store.Store, searcher Searcher, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		router:   router,
		pipeline: pipeline,
		store:    st,
		searcher: searcher,
		logger:   logger,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/posts/generate", s.handleGenerate)
		api.GET("/posts", s.handleList)
		api.GET("/posts/search", s.handleSearch)
		api.GET("/posts/:id", s.handleGet)
		api.PATCH("/posts/:id/visibility", s.handleVisibility)
		api.DELETE("/posts/:id", s.handleDelete)
		api.GET("/public/posts", s.handlePublicList)
	}

	return s
}

// Handler returns the underlying http.Handler, used by tests and by
// Run.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.WithField("addr", addr).Info("Starting API server")
	return srv.ListenAndServe()
}

// requestLogger emits one structured line per request.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		}).Info("Request handled")
	}
}
