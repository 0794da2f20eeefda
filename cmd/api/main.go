package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-blog/internal/app"
	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/core/logger"
	"go-gin-blog/internal/core/server"
	"go-gin-blog/internal/render"
	"go-gin-blog/internal/transport/http/handler"
	mdw "go-gin-blog/internal/transport/http/middleware"
	"go-gin-blog/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	if err := run(cfg); err != nil {
		os.Exit(1)
	}
}

// run owns every deferred cleanup so failures still flush the logger.
func run(cfg *config.Config) error {
	log, cleanup := logger.Build(logOptions(cfg))
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("bootstrap failed", zap.Error(err))
		return err
	}
	defer a.Close()

	// 路由（用户端）
	modules := router.NewRegistry(
		handler.NewArticleHandler(a.Service, render.NewMarkdown(), log.Named("http")),
		handler.NewAuthHandler(a.Auth, mdw.AuthJWT(a.JWT, "", a.Auth)),
	)
	r := router.NewAPIEngine(router.Deps{
		Log:     log,
		Metrics: a.Metrics,
		Limits:  cfg.Limits,
		Mode:    ginMode(cfg.App.Env),
		Modules: modules,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("blog api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("blog api stopped with error", zap.Error(err))
		return err
	}
	log.Info("blog api stopped gracefully")
	return nil
}

func logOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}
}

func ginMode(env string) string {
	if env == "prod" || env == "production" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}
