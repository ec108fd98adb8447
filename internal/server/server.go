package server

import (
	"strings"
	"time"

	"anoa.com/communityhub/internal/config"
	"anoa.com/communityhub/internal/handler"
	"anoa.com/communityhub/internal/middleware"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	pointLogRepo := repository.NewPointLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Static gamification configuration, built once
	rankTable := service.NewRankTable()
	badgeCatalog := service.DefaultBadgeCatalog()
	pointValues := service.DefaultPointValues()

	// Search (optional: skipped when no host is configured)
	var searchSvc service.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewSearchService(meiliClient)
	}

	// Services
	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	statsSvc := service.NewStatsService(userRepo, postRepo, commentRepo, communityRepo)
	badgeSvc := service.NewBadgeService(badgeRepo, statsSvc, badgeCatalog, notificationSvc)
	gamificationSvc := service.NewGamificationService(
		userRepo, pointLogRepo, rankTable, pointValues, badgeSvc, notificationSvc,
		cfg.DailyLoginBase, cfg.StreakBonusMultiplier,
	)
	postSvc := service.NewPostService(postRepo, commentRepo, gamificationSvc, searchSvc)
	communitySvc := service.NewCommunityService(communityRepo, gamificationSvc, searchSvc)
	profileSvc := service.NewProfileService(userRepo, gamificationSvc, badgeSvc, badgeRepo)
	leaderboardSvc := service.NewLeaderboardService(userRepo, rankTable, redisClient, cfg.LeaderboardCacheTTL)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	postHandler := handler.NewPostHandler(postSvc)
	communityHandler := handler.NewCommunityHandler(communitySvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	gamificationHandler := handler.NewGamificationHandler(gamificationSvc)
	badgeHandler := handler.NewBadgeHandler(badgeSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Content routes
		protected.POST("/posts", postHandler.CreatePost)
		protected.GET("/posts", postHandler.ListPosts)
		protected.POST("/posts/:post_id/comments", postHandler.CreateComment)
		protected.GET("/posts/:post_id/comments", postHandler.ListComments)

		// Community feed routes
		protected.POST("/community", communityHandler.CreatePost)
		protected.GET("/community", communityHandler.ListFeed)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		// Gamification routes
		protected.POST("/gamification/daily-login", gamificationHandler.ClaimDailyLogin)
		protected.GET("/gamification/status", gamificationHandler.GetStatus)
		protected.GET("/gamification/points/history", gamificationHandler.GetPointHistory)
		protected.GET("/badges", badgeHandler.ListBadges)
		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
