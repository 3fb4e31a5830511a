package devhost

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics are registered per Server so several servers can coexist.
type metrics struct {
	registry     *prometheus.Registry
	clients      prometheus.Gauge
	readySignals prometheus.Counter
	updates      prometheus.Counter
	reloads      *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &metrics{
		registry: reg,
		clients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "infopanel",
			Subsystem: "devhost",
			Name:      "clients",
			Help:      "Connected host pages.",
		}),
		readySignals: f.NewCounter(prometheus.CounterOpts{
			Namespace: "infopanel",
			Subsystem: "devhost",
			Name:      "ready_signals_total",
			Help:      "Ready signals relayed from the widget.",
		}),
		updates: f.NewCounter(prometheus.CounterOpts{
			Namespace: "infopanel",
			Subsystem: "devhost",
			Name:      "updates_sent_total",
			Help:      "Data updates sent to host pages.",
		}),
		reloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "infopanel",
			Subsystem: "devhost",
			Name:      "fixture_reloads_total",
			Help:      "Fixture reloads by result.",
		}, []string{"result"}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
