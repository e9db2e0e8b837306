package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/ml"
)

const namespace = "fraud"

// Collector owns a private registry with the service's business, HTTP and database metrics
type Collector struct {
	registry *prometheus.Registry

	predictions        *prometheus.CounterVec
	predictionFailures *prometheus.CounterVec
	creditsPurchased   prometheus.Counter
	creditResets       prometheus.Counter

	modelFallback prometheus.Gauge
	modelInfo     *prometheus.GaugeVec

	httpDuration  *prometheus.HistogramVec
	queryDuration *prometheus.HistogramVec

	poolOpen      prometheus.Gauge
	poolInUse     prometheus.Gauge
	poolIdle      prometheus.Gauge
	poolWaitCount prometheus.Gauge
}

// NewCollector registers every metric on a fresh registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,

		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Successful fraud predictions by risk level and verdict.",
		}, []string{"risk_level", "is_fraud"}),
		predictionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_failures_total",
			Help:      "Fraud predictions aborted before the debit, by reason.",
		}, []string{"reason"}),
		creditsPurchased: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credits_purchased_total",
			Help:      "Credits added through purchases.",
		}),
		creditResets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_resets_total",
			Help:      "Periodic credit resets applied.",
		}),

		modelFallback: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_fallback_active",
			Help:      "1 when the synthetic fallback model is being served.",
		}),
		modelInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_info",
			Help:      "Model currently served, always 1.",
		}, []string{"mode", "version"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "SQL statement latency by operation.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		poolOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "open_connections",
			Help: "Open database connections.",
		}),
		poolInUse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "in_use_connections",
			Help: "Database connections in use.",
		}),
		poolIdle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "idle_connections",
			Help: "Idle database connections.",
		}),
		poolWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "wait_count",
			Help: "Total connections waited for, as reported by database/sql.",
		}),
	}
}

// Registry exposes the registry for tests and extra collectors
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// PredictionScored counts a successful prediction
func (c *Collector) PredictionScored(riskLevel string, isFraud bool) {
	c.predictions.WithLabelValues(riskLevel, strconv.FormatBool(isFraud)).Inc()
}

// PredictionFailed counts an aborted prediction
func (c *Collector) PredictionFailed(reason string) {
	c.predictionFailures.WithLabelValues(reason).Inc()
}

// CreditsPurchased adds to the purchased credits total
func (c *Collector) CreditsPurchased(credits int64) {
	if credits > 0 {
		c.creditsPurchased.Add(float64(credits))
	}
}

// CreditsReset counts a credit reset
func (c *Collector) CreditsReset() {
	c.creditResets.Inc()
}

// ModelLoaded records which model is served
func (c *Collector) ModelLoaded(mode ml.Mode, version string) {
	if mode == ml.ModeFallback {
		c.modelFallback.Set(1)
	} else {
		c.modelFallback.Set(0)
	}
	c.modelInfo.Reset()
	c.modelInfo.WithLabelValues(string(mode), version).Set(1)
}

// ObserveHTTP records one handled request
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// ObserveQuery records one SQL statement
func (c *Collector) ObserveQuery(operation string, failed bool, elapsed time.Duration) {
	status := "ok"
	if failed {
		status = "error"
	}
	c.queryDuration.WithLabelValues(operation, status).Observe(elapsed.Seconds())
}

// ObservePool copies connection pool statistics into gauges
func (c *Collector) ObservePool(stats sql.DBStats) {
	c.poolOpen.Set(float64(stats.OpenConnections))
	c.poolInUse.Set(float64(stats.InUse))
	c.poolIdle.Set(float64(stats.Idle))
	c.poolWaitCount.Set(float64(stats.WaitCount))
}

var _ core.MetricsRecorder = (*Collector)(nil)
