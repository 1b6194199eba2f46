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

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Spin metric names
const (
	MetricNameSpinsTotal             = "spins_total"
	MetricNameSpinRejections         = "spin_rejections_total"
	MetricNameOverrideSpinsGranted   = "override_spins_granted_total"
	MetricNameSpinCommitRetries      = "spin_commit_retries_total"
	MetricNameSpinCandidates         = "spin_candidate_pool_size"
	MetricNameContentRejectedScoring = "content_rejected_scoring_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextSpinsTotal             = "Total number of completed spins"
	HelpTextSpinRejections         = "Total number of spins rejected before selection"
	HelpTextOverrideSpinsGranted   = "Total number of override spins granted by admins"
	HelpTextSpinCommitRetries      = "Total number of retried spin transactions"
	HelpTextSpinCandidates         = "Number of eligible candidates per spin"
	HelpTextContentRejectedScoring = "Content items skipped because their signals could not be scored"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelRarity    = "rarity"
	LabelNewUnlock = "new_unlock"
	LabelGuest     = "guest"
	LabelReason    = "reason"
)

// Rejection reasons
const (
	ReasonDailyLimit   = "daily_limit"
	ReasonNoContent    = "no_content"
	ReasonInvalidType  = "invalid_type"
	ReasonUserNotFound = "user_not_found"
	ReasonPersistence  = "persistence"
)

// UnmatchedRoute labels requests that did not hit a registered route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// CandidatePoolBuckets cover catalogs from a handful of titles to tens of thousands
var CandidatePoolBuckets = []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 50000}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnexpectedPayload = "Unexpected event payload"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
