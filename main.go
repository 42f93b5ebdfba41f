package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"jobportal/config"
	"jobportal/internal/app"
	"jobportal/internal/logger"
	"jobportal/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Job Portal API
// @version         1.0
// @description     Job postings, applications and profiles for job seekers and recruiters.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. The token cookie is accepted too.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialise application", zap.Error(err))
	}

	srv := server.NewServer(application)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
	zapLogger.Info("application gracefully stopped")
}
