package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	ContentSaves = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "content_saves_total", Help: "Number of successful portfolio document saves."},
	)
	ImagesUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "images_uploaded_total", Help: "Number of images uploaded and normalized."},
	)
	ImagesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "images_deleted_total", Help: "Number of uploaded images deleted."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContentSaves)
	reg.MustRegister(ImagesUploaded)
	reg.MustRegister(ImagesDeleted)
}
