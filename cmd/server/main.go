package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arjun-dev21/teamforge/internal/api"
	"github.com/arjun-dev21/teamforge/internal/auth"
	"github.com/arjun-dev21/teamforge/internal/cache"
	"github.com/arjun-dev21/teamforge/internal/config"
	"github.com/arjun-dev21/teamforge/internal/db"
	"github.com/arjun-dev21/teamforge/internal/middleware"
	"github.com/arjun-dev21/teamforge/internal/observ"
	"github.com/arjun-dev21/teamforge/internal/repository/postgres"
	"github.com/arjun-dev21/teamforge/internal/service"
	"github.com/arjun-dev21/teamforge/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup has no parent deadline; connecting takes as long as it
	// takes. Request-scoped contexts begin at the HTTP layer.
	ctx := context.Background()

	migrator, err := store.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		return err
	}
	if err := migrator.Close(); err != nil {
		return fmt.Errorf("close migrator: %w", err)
	}
	logger.Info("database schema up to date")

	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	rdb, err := db.NewRedis(ctx, cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	pool := database.Pool()
	userRepo := postgres.NewUserStore(pool)
	workspaceRepo := postgres.NewWorkspaceStore(pool)
	channelRepo := postgres.NewChannelStore(pool)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	workspaceCache := cache.NewWorkspaceCache(rdb, cfg.WorkspaceCacheTTL, logger)

	userSvc := service.NewUser(userRepo, tokens, logger)
	workspaceSvc := service.NewWorkspace(workspaceRepo, channelRepo, workspaceCache, logger)
	channelSvc := service.NewChannel(channelRepo)

	authHandler := api.NewAuthHandler(userSvc, logger)
	userHandler := api.NewUserHandler(userSvc, logger)
	workspaceHandler := api.NewWorkspaceHandler(workspaceSvc, logger)
	channelHandler := api.NewChannelHandler(channelSvc, logger)

	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	logger.Info("starting teamforge",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	// Public: health for load balancers, auth for callers without a token.
	srv.GET("/v1/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})
	srv.POST("/v1/auth/signup", authHandler.Signup)
	srv.POST("/v1/auth/signin", authHandler.Signin)

	v1 := srv.Group("/v1")
	v1.Use(middleware.AuthMiddleware(tokens))

	v1.GET("/users/me", userHandler.GetMe)
	v1.PUT("/users/me/password", userHandler.ChangePassword)

	v1.POST("/workspaces", workspaceHandler.Create)
	v1.GET("/workspaces", workspaceHandler.List)
	v1.GET("/workspaces/mine", workspaceHandler.Mine)
	v1.GET("/workspaces/name/:name", workspaceHandler.GetByName)
	v1.GET("/workspaces/:id", workspaceHandler.GetByID)
	v1.DELETE("/workspaces/:id", workspaceHandler.Delete)
	v1.POST("/workspaces/join", workspaceHandler.Join)

	v1.GET("/channels/:id", channelHandler.GetByID)

	return srv.Run(":" + cfg.Port)
}
