package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "github.com/JoTroup/woocommerce-default-ordering/internal/config"
	router "github.com/JoTroup/woocommerce-default-ordering/internal/http"
	"github.com/JoTroup/woocommerce-default-ordering/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.NewLogger(env.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if env.UsesDefaultJWTSecret() {
		logger.Warn("JWT_SECRET not set, signing tokens with the built-in development key")
	}

	db, err := intconfig.ConnectDB(env.DSN)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer intconfig.CloseDB()
	logger.Info("connected to database")

	r := router.NewRouter(env, logger, db)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}
