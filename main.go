package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"qrplacas/auth"
	"qrplacas/config"
	"qrplacas/handlers"
	"qrplacas/models"
	"qrplacas/qrcode"
)

func main() {
	cfg := config.Config
	defer cfg.Logger.Sync()

	if err := cfg.Validate(); err != nil {
		cfg.Logger.Fatalf("invalid configuration: %v", err)
	}
	if cfg.UsingFallbackJWT {
		cfg.Logger.Warn("JWT_SECRET is not set, signing sessions with the development fallback secret")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		cfg.Logger.Fatalf("database connection error %v", err)
	}
	cfg.Logger.Info("database connected")

	if err := models.Migrate(db); err != nil {
		cfg.Logger.Fatalf("error while running migration: %v", err)
	}
	cfg.Logger.Info("migration was successful")

	var revoker auth.Revoker = auth.NopRevoker{}
	if cfg.Redis.Address != "" {
		redisRevoker := auth.NewRedisRevoker(cfg.Redis)
		defer redisRevoker.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisRevoker.Ping(ctx)
		cancel()
		if err != nil {
			cfg.Logger.Fatalf("session revocation store unavailable: %v", err)
		}
		revoker = redisRevoker
		cfg.Logger.Infof("session revocation backed by redis at %s", cfg.Redis.Address)
	}

	sessions := auth.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL, revoker)
	router := handlers.NewRouter(db, sessions, qrcode.NewGenerator(qrcode.DefaultOptions))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		cfg.Logger.Infof("server is running on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cfg.Logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cfg.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		cfg.Logger.Errorf("graceful shutdown failed: %v", err)
	}
}
