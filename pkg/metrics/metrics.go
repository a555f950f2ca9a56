// Package metrics collects Prometheus metrics for the HTTP API, outgoing mail and
// ephemeral token eviction.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the subset of metrics used outside the HTTP layer.
type Recorder interface {
	RecordEmailSent(kind string)
	RecordEmailFailed(kind string)
	RecordTokensEvicted(kind string, count int64)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	emailsSent    *prometheus.CounterVec
	emailsFailed  *prometheus.CounterVec
	tokensEvicted *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptnote_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cryptnote_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptnote_emails_sent_total",
			Help: "Transactional emails delivered to the transport",
		}, []string{"kind"}),
		emailsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptnote_emails_failed_total",
			Help: "Transactional emails the transport rejected",
		}, []string{"kind"}),
		tokensEvicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptnote_tokens_evicted_total",
			Help: "Expired reset and OTP tokens removed by the sweeper",
		}, []string{"kind"}),
	}

	reg.MustRegister(c.requests, c.latency, c.emailsSent, c.emailsFailed, c.tokensEvicted)
	return c
}

func (c *Collector) RecordEmailSent(kind string) {
	c.emailsSent.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordEmailFailed(kind string) {
	c.emailsFailed.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordTokensEvicted(kind string, count int64) {
	c.tokensEvicted.WithLabelValues(kind).Add(float64(count))
}

// Middleware records count and latency for every request, labelled by the
// matched route template so path parameters do not explode cardinality.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.requests.WithLabelValues(route, method, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.latency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything; used when metrics are disabled.
type Nop struct{}

func (Nop) RecordEmailSent(string)            {}
func (Nop) RecordEmailFailed(string)          {}
func (Nop) RecordTokensEvicted(string, int64) {}
