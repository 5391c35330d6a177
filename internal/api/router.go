package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/cardsearch/internal/carddb"
)

// RouterConfig wires the router's collaborators.
type RouterConfig struct {
	DB *carddb.Database

	// History records every search. Nil disables it.
	History Recorder

	DefaultLimit int
	Corpus       string
	AllowOrigins []string
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	h := NewHandler(cfg.DB, cfg.History, cfg.DefaultLimit, cfg.Corpus)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORS(cfg.AllowOrigins))

	r.GET("/healthcheck", h.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/search", h.Search)
		api.GET("/suggest", h.Suggest)
		api.GET("/stats", h.Stats)
		api.GET("/cards/:name", h.Card)
	}
	return r
}

// Server runs the router until its context ends.
type Server struct {
	Engine *gin.Engine
}

// NewServer creates a server for cfg.
func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg)}
}

// Run serves on address until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "address", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
