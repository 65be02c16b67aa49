// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MembershipOps counts join and cancel attempts by outcome code.
	MembershipOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanclub_membership_operations_total",
		Help: "Subscription joins and cancellations by result",
	}, []string{"operation", "result"})

	// CustomerOps counts customer add, edit and login attempts by outcome code.
	CustomerOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanclub_customer_operations_total",
		Help: "Customer profile operations and logins by result",
	}, []string{"operation", "result"})

	// EventsPublished counts lifecycle messages sent to the broker.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanclub_events_published_total",
		Help: "Membership events published by type and result",
	}, []string{"type", "result"})

	// HTTPRequests counts requests by route, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanclub_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fanclub_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// RecordMembership records the result of a join or cancel.
func RecordMembership(operation, result string) {
	MembershipOps.WithLabelValues(operation, result).Inc()
}

// RecordCustomer records the result of a customer operation.
func RecordCustomer(operation, result string) {
	CustomerOps.WithLabelValues(operation, result).Inc()
}

// RecordPublish records a broker publish.
func RecordPublish(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(eventType, result).Inc()
}

// Middleware observes every request under its route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the default registry for scraping.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
