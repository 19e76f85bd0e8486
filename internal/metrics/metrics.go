package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Load sources.
const (
	SourceCache   = "cache"
	SourceStore   = "store"
	SourceDefault = "default"
)

var (
	ContentLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_loads_total",
			Help: "Page documents served, by where they came from",
		},
		[]string{"page", "source"},
	)

	ContentSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_saves_total",
			Help: "Page document saves, by result",
		},
		[]string{"page", "result"},
	)

	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Image uploads, by result",
		},
		[]string{"result"},
	)

	ImageUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_upload_bytes",
			Help:    "Size of accepted image uploads",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 7),
		},
	)
)
