package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamehub/internal/catalog"
	"gamehub/internal/steam"
	"gamehub/pkg/utils"
)

func main() {
	cfg := utils.LoadServerConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	router := gin.New()
	router.Use(catalog.RequestID(), catalog.RequestLogger(logger), gin.Recovery())

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	started := time.Now()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"uptime": time.Since(started).String(),
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"store_base":       cfg.StoreBaseURL,
			"spy_base":         cfg.SpyBaseURL,
			"upstream_timeout": cfg.UpstreamTimeout.String(),
			"categories":       catalog.Categories(),
		})
	})

	// Catalog (public)
	store := steam.NewClient(cfg.StoreBaseURL, cfg.SpyBaseURL, cfg.UpstreamTimeout)
	handler := catalog.NewHandler(store, logger)
	handler.RegisterRoutes(router.Group("/games"))
	router.GET("/og/game/:id", handler.OGImage)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API server listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
