package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glitchvid_renders_total",
		Help: "Total number of renders, by status",
	}, []string{"status"})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "glitchvid_render_duration_seconds",
		Help:    "Duration of the render pipeline",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	FramesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glitchvid_frames_generated_total",
		Help: "Total number of glitched frames generated across all renders",
	})

	ActiveRenders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glitchvid_active_renders",
		Help: "Number of renders currently in flight",
	})
)
