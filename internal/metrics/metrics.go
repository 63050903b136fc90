// Package metrics exposes Prometheus collectors for catalog traffic.
package metrics

import (
	"errors"

	"github.com/mmcdole/aisle/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aisle_catalog_requests_total",
		Help: "Product listing requests issued to the catalog",
	})
	StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aisle_catalog_stale_responses_total",
		Help: "Responses discarded because a newer request was issued",
	})
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aisle_catalog_fetch_errors_total",
		Help: "Failed product listing requests by kind",
	}, []string{"kind"})
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aisle_catalog_request_duration_seconds",
		Help:    "Catalog HTTP round trip time",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// ErrorKind classifies a fetch error for the kind label
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedPayload):
		return "payload"
	case errors.Is(err, domain.ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, domain.ErrServerOffline):
		return "transport"
	default:
		return "other"
	}
}
