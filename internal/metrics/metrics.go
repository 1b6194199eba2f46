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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Spin Metrics
var (
	SpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
		[]string{LabelType, LabelRarity, LabelNewUnlock, LabelGuest},
	)

	SpinRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinRejections,
			Help: HelpTextSpinRejections,
		},
		[]string{LabelReason},
	)

	OverrideSpinsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOverrideSpinsGranted,
			Help: HelpTextOverrideSpinsGranted,
		},
	)

	SpinCommitRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinCommitRetries,
			Help: HelpTextSpinCommitRetries,
		},
	)

	SpinCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSpinCandidates,
			Help:    HelpTextSpinCandidates,
			Buckets: CandidatePoolBuckets,
		},
		[]string{LabelType},
	)

	ContentRejectedScoring = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameContentRejectedScoring,
			Help: HelpTextContentRejectedScoring,
		},
	)
)
