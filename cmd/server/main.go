package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/internal/api"
	"github.com/devconnect-io/devconnect/internal/auth"
	"github.com/devconnect-io/devconnect/internal/db"
	"github.com/devconnect-io/devconnect/internal/github"
	"github.com/devconnect-io/devconnect/internal/store"
	"github.com/devconnect-io/devconnect/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: failed to load: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: failed to build: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	mongoStore, err := db.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal("mongo: failed to connect", zap.Error(err))
	}
	defer func() {
		if err := mongoStore.Close(context.Background()); err != nil {
			logger.Warn("mongo: close error", zap.Error(err))
		}
	}()

	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		logger.Fatal("mongo: ensure indexes", zap.Error(err))
	}

	authService, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal("failed to initialise auth service", zap.Error(err))
	}

	handler := api.NewHandler(
		authService,
		store.NewUsers(mongoStore.Users),
		store.NewProfiles(mongoStore.Profiles),
		github.NewClient(cfg.GitHub),
		logger,
	)

	router := setupRouter(handler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}

func setupRouter(handler *api.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	handler.RegisterRoutes(router)

	return router
}
