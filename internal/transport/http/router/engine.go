package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/core/metrics"
	"go-gin-blog/internal/core/server"
	mdw "go-gin-blog/internal/transport/http/middleware"
)

// Deps is what both engines share.
type Deps struct {
	Log     *zap.Logger
	Metrics *metrics.Collector
	Limits  config.Limits
	Mode    string
	Modules *Registry
}

func newEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{Mode: d.Mode, SkipPaths: []string{"/health", "/metrics"}})

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(d.Limits.RPS), d.Limits.Burst),
		mdw.RateLimitPerIP(rate.Limit(d.Limits.PerIPRPS), d.Limits.PerIPBurst),
		mdw.ConcurrencyLimit(d.Limits.Concurrency),
		mdw.MaxBodyBytes(d.Limits.MaxBodyBytes),
		mdw.Timeout(d.Limits.Timeout()),
		mdw.Recovery(d.Log),
		mdw.Metrics(d.Metrics),
		mdw.AccessLog(d.Log),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	return r
}
