// Package metrics exposes Prometheus metrics for the HTTP layer, the
// persistence slots and the stores.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/repo"
)

const namespace = "tourist_guide"

// Collector owns a private registry so several collectors can coexist in one
// process (tests build one per case).
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	SlotOperations *prometheus.CounterVec
	SlotDuration   *prometheus.HistogramVec

	Shares *prometheus.CounterVec
}

// NewCollector builds and registers every metric, including the Go runtime
// and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SlotOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slot_operations_total",
				Help:      "Persistence slot reads and writes by key and outcome",
			},
			[]string{"op", "key", "outcome"},
		),
		SlotDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "slot_operation_duration_seconds",
				Help:      "Persistence slot operation duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"op", "key"},
		),
		Shares: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shares_total",
				Help:      "Share deliveries by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
	c.registry.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.SlotOperations, c.SlotDuration,
		c.Shares,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one finished request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveShare records one share delivery.
func (c *Collector) ObserveShare(kind string, err error) {
	c.Shares.WithLabelValues(kind, outcome(err)).Inc()
}

// TrackSize exports a gauge named <name>_count that reads fn at scrape time.
func (c *Collector) TrackSize(name, help string, fn func() int) {
	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Namespace: namespace, Name: name + "_count", Help: help},
		func() float64 { return float64(fn()) },
	))
}

// InstrumentSlot wraps a slot repo so every Get and Put is counted and timed.
func (c *Collector) InstrumentSlot(inner repo.SlotRepo) repo.SlotRepo {
	return &instrumentedSlot{inner: inner, c: c}
}

type instrumentedSlot struct {
	inner repo.SlotRepo
	c     *Collector
}

func (s *instrumentedSlot) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	b, err := s.inner.Get(ctx, key)
	s.observe("get", key, err, time.Since(start))
	return b, err
}

func (s *instrumentedSlot) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.inner.Put(ctx, key, value)
	s.observe("put", key, err, time.Since(start))
	return err
}

func (s *instrumentedSlot) observe(op, key string, err error, d time.Duration) {
	s.c.SlotOperations.WithLabelValues(op, key, outcome(err)).Inc()
	s.c.SlotDuration.WithLabelValues(op, key).Observe(d.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "miss"
	default:
		return "error"
	}
}
