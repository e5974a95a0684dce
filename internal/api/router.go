package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/danwu/photo-search-go/internal/config"
	"github.com/danwu/photo-search-go/internal/handler"
	"github.com/danwu/photo-search-go/internal/middleware"
	"github.com/danwu/photo-search-go/internal/repository"
	"github.com/danwu/photo-search-go/internal/service"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires repositories, services and handlers into a gin engine
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Photo Search API is running",
		})
	})

	// Dependencies
	photoRepo := repository.NewPhotoRepository(db)
	personRepo := repository.NewPersonRepository(db)
	searchHandler := handler.NewSearchHandler(service.NewSearchService(photoRepo, personRepo))
	photoHandler := handler.NewPhotoHandler(service.NewPhotoService(photoRepo))

	// API route group
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))
	{
		api.GET("/search", searchHandler.Search)
		api.GET("/search/clusters", searchHandler.SearchClusters)
		api.GET("/timeline", searchHandler.Timeline)

		photos := api.Group("/photos")
		{
			photos.GET("", photoHandler.List)
			photos.GET("/:id", photoHandler.Get)
			photos.POST("", photoHandler.Create)
		}
	}

	return r
}
