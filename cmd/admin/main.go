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
	"go-gin-blog/internal/domain"
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

func run(cfg *config.Config) error {
	log, cleanup := logger.Build(logger.Options{
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
	})
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

	mode := gin.DebugMode
	if cfg.App.Env == "prod" || cfg.App.Env == "production" {
		mode = gin.ReleaseMode
	}
	// 路由（后台端）
	r := router.NewAdminEngine(router.Deps{
		Log:     log,
		Metrics: a.Metrics,
		Limits:  cfg.Limits,
		Mode:    mode,
		Modules: router.NewRegistry(handler.NewArticleHandler(a.Service, render.NewMarkdown(), log.Named("http"))),
	}, mdw.AuthJWT(a.JWT, domain.RoleAdmin, a.Auth))

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("blog admin starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("blog admin stopped with error", zap.Error(err))
		return err
	}
	log.Info("blog admin stopped gracefully")
	return nil
}
