// Package metrics holds the prometheus collectors of the blog service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-gin-blog/internal/domain"
)

type Collector struct {
	reqTotal  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	mutations *prometheus.CounterVec
	gatherer  prometheus.Gatherer
}

// NewCollector registers the collectors on reg. Pass prometheus.NewRegistry()
// in tests so runs don't collide on the global registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		reqTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
			[]string{"path", "method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of HTTP requests",
				Buckets: prometheus.DefBuckets,
			}, []string{"path", "method"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "blog_article_mutations_total", Help: "Article create/update/delete outcomes"},
			[]string{"op", "result"},
		),
		gatherer: reg,
	}
	reg.MustRegister(c.reqTotal, c.latency, c.mutations)
	return c
}

// RecordMutation labels successes "ok" and failures with their error kind.
func (c *Collector) RecordMutation(op string, kind domain.Kind) {
	result := "ok"
	if kind != "" {
		result = string(kind)
	}
	c.mutations.WithLabelValues(op, result).Inc()
}

func (c *Collector) ObserveRequest(path, method string, status int, d time.Duration) {
	c.reqTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(path, method).Observe(d.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
