package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests served",
	}, []string{"method", "path", "status"})
)

func Init() {
	prometheus.MustRegister(HTTPRequestDuration, HTTPRequestsTotal)
}

// Middleware records per-route latency and request counts. The route
// template is used instead of the raw path to keep label cardinality low.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()

			return err
		}
	}
}
