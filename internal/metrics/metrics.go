// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Business metrics
var (
	ArticlesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "newsroom_articles_total",
		Help: "Number of articles in the database",
	})

	UsersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "newsroom_users_total",
		Help: "Number of registered users",
	})

	ArticlesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsroom_articles_published_total",
		Help: "Articles created through the API",
	})

	// EngagementTotal counts likes and reviews by outcome: created, duplicate, own_article.
	EngagementTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_engagement_total",
		Help: "Like and review attempts by kind and outcome",
	}, []string{"kind", "outcome"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	EditionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsroom_editions_created_total",
		Help: "Daily editions created by the scheduler",
	})
)

func RecordEngagement(kind, outcome string) {
	EngagementTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordLogin(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	LoginAttempts.WithLabelValues(result).Inc()
}

// Middleware records request counts and latency keyed by the route pattern,
// not the raw path, to keep label cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
