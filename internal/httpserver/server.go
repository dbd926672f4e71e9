package httpserver

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tinytelemetry/tabfeed/internal/feed"
	"github.com/tinytelemetry/tabfeed/internal/model"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Server exposes the tab registry and per-tab article listings over HTTP.
type Server struct {
	addr      string
	fetcher   model.ArticleFetcher
	server    *http.Server
	listener  net.Listener
	flight    singleflight.Group
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, fetcher model.ArticleFetcher) *Server {
	if addr == "" {
		addr = model.DefaultAPIAddr
	}
	return &Server{
		addr:    addr,
		fetcher: fetcher,
	}
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/tabs", s.handleTabs)
	r.GET("/api/tabs/:id/articles", s.handleArticles)
	return r
}

// Listen binds the configured address. It is separate from Serve so callers
// can learn the bound address (useful with port 0).
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve handles requests until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	s.startTime = time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("httpserver: listening on %s", s.listener.Addr())
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	uptime := time.Duration(0)
	if !s.startTime.IsZero() {
		uptime = time.Since(s.startTime)
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": uptime.String(),
		"tabs":   len(model.Tabs()),
	})
}

func (s *Server) handleTabs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tabs": model.Tabs()})
}

func (s *Server) handleArticles(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab id must be an integer"})
		return
	}
	tab, ok := model.LookupTab(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tab"})
		return
	}

	// Concurrent requests for the same tab share one upstream fetch. The
	// result is not retained once the fetch returns.
	ctx := context.WithoutCancel(c.Request.Context())
	v, err, shared := s.flight.Do(strconv.Itoa(tab.ID), func() (any, error) {
		return s.fetcher.FetchArticles(ctx, tab.Endpoint)
	})
	if err != nil {
		log.Printf("httpserver: tab %d fetch failed: %v", tab.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": feed.LoadFailedMessage})
		return
	}

	articles, _ := v.([]model.Article)
	if articles == nil {
		articles = []model.Article{}
	}
	c.JSON(http.StatusOK, gin.H{
		"tab":      tab,
		"articles": articles,
		"count":    len(articles),
		"shared":   shared,
	})
}
