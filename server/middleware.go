package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type httpMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "The total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "The HTTP request latencies in seconds",
			},
			[]string{"method", "endpoint"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.requestDuration)
	}
	return m
}

// collect records request counts and latencies. The endpoint label is the
// route pattern, so words and languages never become label values.
func (m *httpMetrics) collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.requestsTotal.WithLabelValues(method, endpoint, status).Inc()
			m.requestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

func requestLogging(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().RequestURI,
				"status":     c.Response().Status,
				"latency":    time.Since(start).String(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}).Debug("handled request")

			return err
		}
	}
}
