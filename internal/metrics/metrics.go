// Package metrics collects Prometheus metrics for the social engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by the services
type Recorder interface {
	RecordToggle(kind string, on bool)
	RecordNotification(notificationType string, err error)
	RecordFeedComposed(duration time.Duration, size int)
}

// Collector is the Prometheus implementation of Recorder
type Collector struct {
	toggles       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	feedLatency   prometheus.Histogram
	feedSize      prometheus.Gauge
}

// NewCollector creates a Collector and registers it on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebook_toggles_total",
			Help: "Like, save and follow toggles by resulting state",
		}, []string{"kind", "state"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebook_notifications_total",
			Help: "Notifications emitted by type and outcome",
		}, []string{"type", "outcome"}),
		feedLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recipebook_feed_compose_seconds",
			Help:    "Time to compose a home feed",
			Buckets: prometheus.DefBuckets,
		}),
		feedSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "recipebook_feed_entries",
			Help: "Number of entries in the last composed feed",
		}),
	}

	reg.MustRegister(
		c.toggles,
		c.notifications,
		c.feedLatency,
		c.feedSize,
	)

	return c
}

func (c *Collector) RecordToggle(kind string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	c.toggles.WithLabelValues(kind, state).Inc()
}

func (c *Collector) RecordNotification(notificationType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.notifications.WithLabelValues(notificationType, outcome).Inc()
}

func (c *Collector) RecordFeedComposed(duration time.Duration, size int) {
	c.feedLatency.Observe(duration.Seconds())
	c.feedSize.Set(float64(size))
}

// Handler returns the scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordToggle(string, bool)             {}
func (Nop) RecordNotification(string, error)      {}
func (Nop) RecordFeedComposed(time.Duration, int) {}
