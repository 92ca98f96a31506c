package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gobiblia/internal/scripture"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// Search and the action endpoint accept POST without writing;
	// the action endpoint refuses its own writing actions.
	router.Use(ReadOnlyMiddleware(cfg.ReadOnly, "/api", "/api/search"))

	defaultVersion := scripture.DefaultVersion
	if cfg.Client != nil {
		defaultVersion = cfg.Client.DefaultVersion()
	}

	var pinger Pinger
	if p, ok := cfg.Store.(Pinger); ok {
		pinger = p
	}

	health := NewHealthController(pinger, cfg.Version)
	content := NewContentController(cfg.Client)
	progress := NewReadingsController(cfg.Store, cfg.Auditor, defaultVersion)
	actions := NewActionController(content, progress, cfg.ReadOnly)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Single action endpoint
	router.GET("/api", actions.Dispatch)
	router.POST("/api", actions.Dispatch)

	// Content API endpoints
	router.GET("/api/books", content.GetBooks)
	router.GET("/api/books/:book", content.GetBook)
	router.GET("/api/verses/:version/:book/:chapter", content.GetChapter)
	router.GET("/api/verses/:version/:book/:chapter/:verse", content.GetVerse)
	router.GET("/api/random", content.RandomVerse)
	router.POST("/api/search", content.Search)
	router.GET("/api/versions", content.ListVersions)

	// Reading progress endpoints
	router.POST("/api/readings", progress.RecordReading)
	router.GET("/api/readings", progress.GetHistory)
	router.GET("/api/readings/favorites", progress.GetFavorites)
	router.PUT("/api/readings/favorite", progress.SetFavorite)
	router.GET("/api/stats", progress.GetStats)

	return router
}
