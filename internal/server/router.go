package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vibetune/backend/internal/handlers"
	"github.com/vibetune/backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	PlaylistHandler   *handlers.PlaylistHandler
	TrackHandler      *handlers.TrackHandler
	CatalogHandler    *handlers.CatalogHandler
	GenerationHandler *handlers.GenerationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	// Public
	router.GET("/", handlers.HealthCheck)
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/auth/register", cfg.AuthHandler.Register)
	router.POST("/auth/login", cfg.AuthHandler.Login)
	router.GET("/lastfm-top-tracks", cfg.CatalogHandler.TopTracks)
	router.GET("/lastfm-top-artists", cfg.CatalogHandler.TopArtists)
	router.GET("/search", cfg.CatalogHandler.Search)
	router.GET("/genre/:genre", cfg.CatalogHandler.GenreTracks)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.GET("/users", cfg.UserHandler.List)
	protected.GET("/users/:id", cfg.UserHandler.GetByID)
	protected.DELETE("/users/:id", cfg.UserHandler.Delete)

	protected.POST("/playlist", cfg.PlaylistHandler.Create)
	protected.GET("/playlist", cfg.PlaylistHandler.GetMine)
	protected.GET("/playlist/favorites", cfg.PlaylistHandler.GetMyFavorites)
	protected.GET("/playlist/:id", cfg.PlaylistHandler.GetByID)
	protected.PATCH("/playlist/:id", cfg.PlaylistHandler.Update)
	protected.DELETE("/playlist/:id", cfg.PlaylistHandler.Delete)
	protected.POST("/playlist/:id/favorite", cfg.PlaylistHandler.Favorite)
	protected.DELETE("/playlist/:id/favorite", cfg.PlaylistHandler.Unfavorite)

	protected.POST("/playlist/:id/track", cfg.TrackHandler.Add)
	protected.DELETE("/playlist/:id/track/:trackId", cfg.TrackHandler.Remove)
	protected.GET("/track/youtube-track", cfg.TrackHandler.YoutubeTrack)

	protected.POST("/ai/playlist-from-prompt", cfg.GenerationHandler.FromPrompt)
	protected.POST("/ai/playlist-from-quiz", cfg.GenerationHandler.FromQuiz)

	return router
}
