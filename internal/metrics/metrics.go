package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commas_page_renders_total",
		Help: "Page render attempts by template name and outcome.",
	}, []string{"page", "status"})

	PageRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commas_page_render_duration_seconds",
		Help:    "Time spent executing (and minifying) a page template.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"page"})

	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "commas_build_info",
		Help: "Build metadata of the running binary; always 1.",
	}, []string{"version", "commit", "branch"})
)
