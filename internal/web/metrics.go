package web

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus instruments.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	webhookEvents   *prometheus.CounterVec
	purchases       prometheus.Counter
}

// NewMetrics registers the instruments on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nordnotat_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nordnotat_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		webhookEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nordnotat_webhook_events_total",
			Help: "Webhook notifications by event type and outcome.",
		}, []string{"type", "outcome"}),
		purchases: factory.NewCounter(prometheus.CounterOpts{
			Name: "nordnotat_purchases_recorded_total",
			Help: "Entitlements durably recorded via the webhook path.",
		}),
	}
}

// Middleware instruments every request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// WebhookEvent counts one processed notification.
func (m *Metrics) WebhookEvent(eventType, outcome string) {
	m.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

// PurchaseRecorded counts one durably recorded entitlement.
func (m *Metrics) PurchaseRecorded() {
	m.purchases.Inc()
}
