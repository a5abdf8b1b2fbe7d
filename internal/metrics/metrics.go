package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EngagementActionsTotal      = "socialconnect_engagement_actions_total"
	NotificationsTotal          = "socialconnect_notifications_total"
	CounterReconciliationsTotal = "socialconnect_counter_reconciliations_total"
)

// Notification results.
const (
	ResultCreated       = "created"
	ResultFailed        = "failed"
	ResultSuppressed    = "suppressed"
	ResultPublishFailed = "publish_failed"
)

var (
	EngagementActions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: EngagementActionsTotal,
		Help: "Count of follow, like and comment mutations that changed state",
	}, []string{"action"})

	Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: NotificationsTotal,
		Help: "Count of notification fan-out attempts by type and result",
	}, []string{"type", "result"})

	CounterReconciliations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: CounterReconciliationsTotal,
		Help: "Count of post counter recomputations",
	})
)

// NewHandler returns the /metrics handler backed by a dedicated registry.
func NewHandler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(EngagementActions, Notifications, CounterReconciliations)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
