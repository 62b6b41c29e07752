package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Store Metrics
var (
	StoreCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreCallsTotal,
			Help: HelpTextStoreCallsTotal,
		},
		[]string{LabelOp, LabelCollection, LabelOutcome},
	)

	StoreCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameStoreCallDuration,
			Help:    HelpTextStoreCallDuration,
			Buckets: StoreLatencyBuckets,
		},
		[]string{LabelOp, LabelCollection},
	)
)

// Engine Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	SyncDocumentsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncDocumentsWritten,
			Help: HelpTextSyncDocumentsWritten,
		},
		[]string{LabelCollection},
	)

	SyncCollectionResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncCollectionResults,
			Help: HelpTextSyncCollectionResults,
		},
		[]string{LabelCollection, LabelState},
	)

	KeysMigrated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameKeysMigrated,
			Help: HelpTextKeysMigrated,
		},
		[]string{LabelCollection},
	)

	ResolutionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResolutionOutcomes,
			Help: HelpTextResolutionOutcomes,
		},
		[]string{LabelOutcome},
	)

	ResolutionWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameResolutionWarnings,
			Help: HelpTextResolutionWarnings,
		},
	)

	InventoryRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryRejections,
			Help: HelpTextInventoryRejections,
		},
		[]string{LabelKind},
	)
)
