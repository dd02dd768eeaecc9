// Package observability holds the Prometheus metrics for the service.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	OffersCreated      prometheus.Counter
	OffersUpdated      prometheus.Counter
	SubmitFailures     *prometheus.CounterVec
	KeywordsRegistered prometheus.Counter
	DraftsSaved        prometheus.Counter
	DraftsCleared      prometheus.Counter
	PaymentIntents     *prometheus.CounterVec
}

// NewCollector creates the metrics collector. A singleton avoids
// duplicate registration when tests build more than one container.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	offersCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_created_total",
			Help:      "Total number of offers created",
		},
	)

	offersUpdated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_updated_total",
			Help:      "Total number of offers updated",
		},
	)

	submitFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_submit_failures_total",
			Help:      "Total number of failed offer submissions",
		},
		[]string{"reason"},
	)

	keywordsRegistered := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keywords_registered_total",
			Help:      "Total number of keywords registered",
		},
	)

	draftsSaved := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_saved_total",
			Help:      "Total number of draft saves",
		},
	)

	draftsCleared := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_cleared_total",
			Help:      "Total number of draft clears",
		},
	)

	paymentIntents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_intents_total",
			Help:      "Total number of payment intents by outcome",
		},
		[]string{"status"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		offersCreated,
		offersUpdated,
		submitFailures,
		keywordsRegistered,
		draftsSaved,
		draftsCleared,
		paymentIntents,
	)

	globalCollector = &Collector{
		registry:           registry,
		HTTPRequests:       httpRequests,
		HTTPDuration:       httpDuration,
		OffersCreated:      offersCreated,
		OffersUpdated:      offersUpdated,
		SubmitFailures:     submitFailures,
		KeywordsRegistered: keywordsRegistered,
		DraftsSaved:        draftsSaved,
		DraftsCleared:      draftsCleared,
		PaymentIntents:     paymentIntents,
	}
	return globalCollector
}

// Registry exposes the collector's registry for the /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ResetForTesting clears the singleton so tests can build a fresh
// collector.
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}
