package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportchat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supportchat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Bot metrics
	BotRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportchat_bot_requests_total",
			Help: "Outbound requests to the bot service",
		},
		[]string{"outcome"}, // "ok", "unreachable", "bad_status", "malformed"
	)

	BotRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "supportchat_bot_request_duration_seconds",
			Help:    "Latency of the bot service call",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	Replies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportchat_replies_total",
			Help: "Replies shown to users by kind",
		},
		[]string{"kind"},
	)

	ContentLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportchat_content_lookups_total",
			Help: "Category to content URL lookups",
		},
		[]string{"result"}, // "found", "absent", "cached", "error"
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportchat_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)
)
