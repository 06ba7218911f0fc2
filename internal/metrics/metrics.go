package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ChartRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditdash_chart_renders_total",
			Help: "Chart renders by chart slug and outcome",
		},
		[]string{"chart", "outcome"}, // ok|error
	)

	ChartRenderSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creditdash_chart_render_seconds",
			Help:    "Time spent computing a chart spec",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"chart"},
	)

	ChartCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditdash_chart_cache_total",
			Help: "Chart cache lookups by result",
		},
		[]string{"result"}, // hit|miss|error|skipped
	)

	DatasetRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "creditdash_dataset_records",
			Help: "Records in the prepared table currently served",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		ChartRenders,
		ChartRenderSeconds,
		ChartCache,
		DatasetRecords,
	)
}
