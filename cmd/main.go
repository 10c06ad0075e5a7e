package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kdduha/healthy-eating/internal/cache"
	"github.com/kdduha/healthy-eating/internal/config"
	"github.com/kdduha/healthy-eating/internal/handler"
	"github.com/kdduha/healthy-eating/internal/logger"
	"github.com/kdduha/healthy-eating/internal/server"
	"github.com/kdduha/healthy-eating/internal/service"
	"github.com/kdduha/healthy-eating/internal/upstream"
	"go.uber.org/zap"

	_ "github.com/kdduha/healthy-eating/docs"
)

// @title Healthy Eating API
// @version 1.0
// @description Rates foods and food photos with a large language model.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer lg.Sync() //nolint:errcheck

	var client upstream.Client
	switch cfg.Upstream.Provider {
	case upstream.ProviderOpenAI:
		client = upstream.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.Upstream.Timeout)
	default:
		client = upstream.NewAnthropicClient(cfg.Upstream.APIKey, cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	}
	analyzeService := service.NewAnalyzeService(lg.Named("service"), client, cfg.Model())

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
			cfg.RedisConfig.TTL,
		)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			lg.Warn("redis is not reachable yet", zap.String("addr", cfg.RedisConfig.Addr), zap.Error(err))
		}
		analyzeService.SetCacheClient(redisCache)
		lg.Info("set redis as cache", zap.String("addr", cfg.RedisConfig.Addr))
	}

	router := server.NewRouter(server.Handlers{
		Analyze: handler.NewAnalyzeHandler(analyzeService, lg.Named("handler"), cfg.Server.MaxImageBodyBytes),
		Static:  handler.NewStaticHandler(cfg.Server.StaticIndexPath, lg.Named("static")),
		Logger:  lg.Named("http"),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		lg.Info("server started",
			zap.String("url", "http://localhost:"+cfg.Server.Port),
			zap.String("provider", client.Provider()),
			zap.String("model", cfg.Model()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("listen error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Fatal("server forced to shutdown", zap.Error(err))
	}
	lg.Info("server stopped")
}
