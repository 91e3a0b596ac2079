package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vibetune/backend/internal/clients/deezer"
	"github.com/vibetune/backend/internal/clients/lastfm"
	"github.com/vibetune/backend/internal/clients/suggester"
	"github.com/vibetune/backend/internal/clients/youtube"
	"github.com/vibetune/backend/internal/db"
	"github.com/vibetune/backend/internal/handlers"
	"github.com/vibetune/backend/internal/logger"
	"github.com/vibetune/backend/internal/middleware"
	"github.com/vibetune/backend/internal/repos"
	"github.com/vibetune/backend/internal/server"
	"github.com/vibetune/backend/internal/services"
	"github.com/vibetune/backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	lastfmBaseURL := utils.GetEnv("LASTFM_BASE_URL", "https://ws.audioscrobbler.com/2.0/", log)
	lastfmAPIKey := utils.GetEnv("LASTFM_API_KEY", "", log)
	youtubeAPIKey := utils.GetEnv("YOUTUBE_API_KEY", "", log)
	youtubeBaseURL := utils.GetEnv("YOUTUBE_BASE_URL", youtube.DefaultBaseURL, log)
	deezerBaseURL := utils.GetEnv("DEEZER_BASE_URL", "https://api.deezer.com", log)
	aiAgentURL := utils.GetEnv("AI_AGENT_URL", "http://localhost:11434", log)
	aiAgentMode := utils.GetEnv("AI_AGENT_MODE", "descriptors", log)
	aiAgentTimeout := utils.GetEnvAsInt("AI_AGENT_TIMEOUT_SECONDS", 60, log)
	playlistSize := utils.GetEnvAsInt("GENERATION_PLAYLIST_SIZE", 10, log)

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	userTokenRepo := repos.NewUserTokenRepo(theDB, log)
	playlistRepo := repos.NewPlaylistRepo(theDB, log)
	trackRepo := repos.NewTrackRepo(theDB, log)
	generationLogRepo := repos.NewGenerationLogRepo(theDB, log)

	// Clients
	log.Info("Setting up upstream clients from main...")
	lastfmClient, err := lastfm.NewClient(lastfmBaseURL, lastfmAPIKey, log)
	if err != nil {
		log.Error("Could not init Last.fm client", "error", err)
		os.Exit(1)
	}
	suggesterClient, err := suggester.NewClient(
		aiAgentURL,
		suggester.Mode(aiAgentMode),
		time.Duration(aiAgentTimeout)*time.Second,
		log,
	)
	if err != nil {
		log.Error("Could not init suggester client", "error", err)
		os.Exit(1)
	}
	youtubeClient, err := youtube.NewClient(youtubeBaseURL, youtubeAPIKey, log)
	if err != nil {
		log.Error("Could not init YouTube client", "error", err)
		os.Exit(1)
	}
	deezerClient := deezer.NewClient(deezerBaseURL, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(theDB, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(theDB, log, userRepo)
	playlistService := services.NewPlaylistService(theDB, log, playlistRepo, trackRepo, userRepo)
	catalogService := services.NewCatalogService(log, lastfmClient)
	videoService := services.NewVideoService(log, youtubeClient)
	generationService := services.NewGenerationService(log, suggesterClient, lastfmClient, deezerClient, generationLogRepo, playlistSize)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	playlistHandler := handlers.NewPlaylistHandler(playlistService)
	trackHandler := handlers.NewTrackHandler(playlistService, videoService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	generationHandler := handlers.NewGenerationHandler(generationService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		UserHandler:       userHandler,
		PlaylistHandler:   playlistHandler,
		TrackHandler:      trackHandler,
		CatalogHandler:    catalogHandler,
		GenerationHandler: generationHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
