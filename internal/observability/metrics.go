package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesAppended counts successful appends, labeled by conversation kind.
	MessagesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatcore_messages_appended_total",
		Help: "Messages appended to conversation logs.",
	}, []string{"kind"})

	// Resolutions counts resolver outcomes ("direct", "group", "event",
	// "not_found").
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatcore_resolutions_total",
		Help: "Conversation identifier resolutions by outcome.",
	}, []string{"outcome"})

	// CompletionRequests counts completion collaborator calls by status
	// ("ok", "error").
	CompletionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatcore_completion_requests_total",
		Help: "Assistant completion requests by status.",
	}, []string{"status"})

	// CompletionDuration observes completion collaborator latency.
	CompletionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatcore_completion_duration_seconds",
		Help:    "Latency of assistant completion requests.",
		Buckets: prometheus.DefBuckets,
	})
)
