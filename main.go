package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lingolink/avatar"
	"lingolink/chat"
	"lingolink/config"
	"lingolink/database"
	"lingolink/handlers"
	"lingolink/middleware"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	defer logger.Sync()

	db, err := database.Connect(cfg.MysqlDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		logger.Fatal("failed to create tables", zap.Error(err))
	}

	chatClient, err := chat.NewClient(cfg.StreamKey, cfg.StreamSecret)
	if err != nil {
		logger.Fatal("failed to create chat client", zap.Error(err))
	}

	syncer := chat.NewSyncer(chatClient, logger)
	go syncer.Run()
	defer syncer.Close()

	h := handlers.New(db, cfg, logger, avatar.NewIndexedProvider(), chatClient, syncer)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.Auth(db, cfg.JWTSecret)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/onboarding", requireAuth, h.Onboard)
		auth.GET("/me", requireAuth, h.Me)
	}

	users := r.Group("/api/users")
	users.Use(requireAuth)
	{
		users.GET("", h.GetRecommendedUsers)
		users.GET("/friends", h.GetFriends)
		users.POST("/friend-request/:id", h.SendFriendRequest)
		users.PUT("/friend-request/:id/accept", h.AcceptFriendRequest)
		users.GET("/friend-requests", h.GetFriendRequests)
		users.GET("/outgoing-friend-requests", h.GetOutgoingFriendRequests)
	}

	chatRoutes := r.Group("/api/chat")
	chatRoutes.Use(requireAuth)
	{
		chatRoutes.GET("/token", h.GetStreamToken)
	}

	logger.Info("server starting", zap.String("addr", cfg.ServerAddr))
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Production() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}
