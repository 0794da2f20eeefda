// Package app wires configuration into the services every binary needs.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-blog/internal/core/auth"
	"go-gin-blog/internal/core/cache"
	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/core/database"
	"go-gin-blog/internal/core/logger"
	"go-gin-blog/internal/core/metrics"
	"go-gin-blog/internal/feature/article"
	"go-gin-blog/internal/feature/user"
	"go-gin-blog/internal/repo"
	"go-gin-blog/internal/service"
)

type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Cache    *cache.Cache // nil when caching is off or redis is unreachable
	Metrics  *metrics.Collector
	JWT      *auth.JWTer
	Users    *repo.UserRepo
	Articles *repo.ArticleRepo
	Auth     *service.AuthService
	Service  service.ArticleService
}

// Models lists the gorm models in dependency order.
func Models() []any { return []any{&user.UserModel{}, &article.ArticleModel{}} }

func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Writer:             logger.ToWriter(l.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s (%s): %w", cfg.DB.Driver, database.MaskDSN(cfg.DB.DSN), err)
	}
	return db, nil
}

func Migrate(cfg *config.Config, db *gorm.DB) error {
	return database.Migrate(db, cfg.DB.Driver, cfg.DB.Migrations, cfg.DB.DSN, Models()...)
}

// New opens the database, optionally migrates it, and builds the services.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := OpenDB(cfg, l)
	if err != nil {
		return nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))

	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg, db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		l.Info("migrations applied", zap.String("mode", cfg.DB.Migrations))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &App{
		Cfg:      cfg,
		Log:      l,
		DB:       db,
		Metrics:  metrics.NewCollector(reg),
		JWT:      auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL()),
		Users:    repo.NewUserRepo(db),
		Articles: repo.NewArticleRepo(db),
	}
	a.Auth = service.NewAuthService(a.Users, a.JWT)

	var svc service.ArticleService = service.NewArticleService(
		a.Articles,
		service.NewAuthorResolver(a.Users),
		service.WithLogger(l.Named("article")),
		service.WithRecorder(a.Metrics),
	)
	if cfg.Cache.Enabled {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := c.Ping(pctx)
		cancel()
		if err != nil {
			l.Warn("redis unreachable, article cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = c.Close()
		} else {
			a.Cache = c
			svc = service.NewCachedArticles(svc, c, cfg.Cache.Prefix, cfg.Cache.TTL(), l.Named("cache"))
			l.Info("article cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL()))
		}
	}
	a.Service = svc
	return a, nil
}

func (a *App) Close() {
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if err := database.Close(a.DB); err != nil {
		a.Log.Warn("close database", zap.Error(err))
	}
}
