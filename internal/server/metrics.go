package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestsTotal  *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	scenarioTotal  *prometheus.CounterVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radwaste",
			Name:      "requests_total",
			Help:      "Total number of dashboard requests.",
		}, []string{"route", "result"}),
		renderDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "radwaste",
			Name:      "render_duration_seconds",
			Help:      "Latency distribution for a complete render.",
			Buckets: []float64{
				0.001, 0.002, 0.005,
				0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5,
			},
		}, []string{"route"}),
		scenarioTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radwaste",
			Name:      "scenario_renders_total",
			Help:      "Renders per selected leaching scenario.",
		}, []string{"scenario"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
