package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Store metric names
const (
	MetricNameStoreCallsTotal   = "store_calls_total"
	MetricNameStoreCallDuration = "store_call_duration_seconds"
)

// Engine metric names
const (
	MetricNameEventsPublished       = "events_published_total"
	MetricNameSyncDocumentsWritten  = "sync_documents_written_total"
	MetricNameSyncCollectionResults = "sync_collection_results_total"
	MetricNameKeysMigrated          = "sync_keys_migrated_total"
	MetricNameResolutionOutcomes    = "resolver_definition_outcomes_total"
	MetricNameResolutionWarnings    = "resolver_consistency_warnings_total"
	MetricNameInventoryRejections   = "inventory_rejections_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Store metric help text
const (
	HelpTextStoreCallsTotal   = "Total number of document store calls by operation and outcome"
	HelpTextStoreCallDuration = "Document store call latency in seconds"
)

// Engine metric help text
const (
	HelpTextEventsPublished       = "Total number of change notifications published"
	HelpTextSyncDocumentsWritten  = "Total number of documents written during collection initialization"
	HelpTextSyncCollectionResults = "Collection initialization results by terminal state"
	HelpTextKeysMigrated          = "Total number of documents moved to padded keys"
	HelpTextResolutionOutcomes    = "Definition outcomes produced by the resolver"
	HelpTextResolutionWarnings    = "Resolutions that matched fewer keys than were selected"
	HelpTextInventoryRejections   = "Inventory mutations rejected by validation"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelOp         = "op"
	LabelCollection = "collection"
	LabelOutcome    = "outcome"
	LabelState      = "state"
	LabelKind       = "kind"
)

// Outcome label values for store calls
const (
	OutcomeOK             = "ok"
	OutcomeNotInitialized = "not_initialized"
	OutcomeError          = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// StoreLatencyBuckets covers in-process stores (sub-millisecond) up to slow remote calls
var StoreLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}
