package inspect

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kbukum/ioc/di"
)

const metricsNamespace = "ioc"

// Metrics holds the Prometheus registry served on /metrics. Each Server owns
// one, so several servers in a process (or in tests) never collide.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the HTTP instruments, a collector reporting the
// binding table of c, and the Go runtime collector.
func NewMetrics(c di.Container) *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "inspect",
			Name:      "http_requests_total",
			Help:      "Total number of inspect HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "inspect",
			Name:      "http_request_duration_seconds",
			Help:      "Inspect HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(
		requests,
		duration,
		newBindingCollector(c),
		collectors.NewGoCollector(),
	)

	return &Metrics{
		registry: registry,
		requests: requests,
		duration: duration,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and latency by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// bindingCollector reads the binding table at scrape time.
type bindingCollector struct {
	container    di.Container
	bindings     *prometheus.Desc
	materialized *prometheus.Desc
}

func newBindingCollector(c di.Container) *bindingCollector {
	return &bindingCollector{
		container: c,
		bindings: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "container", "bindings"),
			"Number of bindings in the container by lifecycle",
			[]string{"lifecycle"},
			prometheus.Labels{"container_id": c.ID()},
		),
		materialized: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "container", "singletons_materialized"),
			"Number of singleton instances held by the container",
			nil,
			prometheus.Labels{"container_id": c.ID()},
		),
	}
}

func (b *bindingCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- b.bindings
	ch <- b.materialized
}

func (b *bindingCollector) Collect(ch chan<- prometheus.Metric) {
	counts := map[di.Lifecycle]int{di.Scoped: 0, di.Singleton: 0}
	materialized := 0
	for _, r := range b.container.Registrations() {
		counts[r.Lifecycle]++
		if r.Materialized {
			materialized++
		}
	}
	for lc, n := range counts {
		ch <- prometheus.MustNewConstMetric(b.bindings, prometheus.GaugeValue, float64(n), lc.String())
	}
	ch <- prometheus.MustNewConstMetric(b.materialized, prometheus.GaugeValue, float64(materialized))
}
