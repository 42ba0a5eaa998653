package metrics

import (
	"net/http"
	"strconv"
	"time"

	"campus-navigator/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 服务的全部 Prometheus 指标
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DirectionsRequests *prometheus.CounterVec
	GeolocationResults *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics 创建并注册指标；reg 为 nil 时使用一个新的 Registry
// /metrics 输出 reg 自身 (它同时是 Gatherer 时) 或默认 Gatherer 中的指标
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{gatherer: prometheus.DefaultGatherer}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campus_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.DirectionsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_directions_requests_total",
			Help: "Directions requests by outcome",
		},
		[]string{"outcome"},
	)

	m.GeolocationResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_geolocation_results_total",
			Help: "Settled position acquisitions by source",
		},
		[]string{"source"},
	)

	m.ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "campus_navigation_sessions",
			Help: "Number of live navigation sessions",
		},
	)

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DirectionsRequests,
		m.GeolocationResults,
		m.ActiveSessions,
	)

	return m
}

// DirectionsResult 实现 navigation.Recorder
func (m *Metrics) DirectionsResult(outcome string) {
	m.DirectionsRequests.WithLabelValues(outcome).Inc()
}

// PositionAcquired 实现 navigation.Recorder
func (m *Metrics) PositionAcquired(source model.PositionSource) {
	m.GeolocationResults.WithLabelValues(string(source)).Inc()
}

// Middleware 记录 HTTP 请求数和耗时
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 用路由模板作标签，避免 :id 造成标签爆炸
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler /metrics 接口
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
