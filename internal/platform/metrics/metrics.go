package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the request pipeline.
type Metrics struct {
	ActionsVerified  *prometheus.CounterVec
	ActionsRejected  *prometheus.CounterVec
	ActionsDenied    *prometheus.CounterVec
	EventsCreated    prometheus.Counter
	ExpensesRecorded prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ActionsVerified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "events_tracker_actions_verified_total",
			Help: "Signed actions whose signature verified, by action kind",
		}, []string{"action"}),
		ActionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "events_tracker_actions_rejected_total",
			Help: "Signed actions rejected before authorization, by action kind",
		}, []string{"action"}),
		ActionsDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "events_tracker_actions_denied_total",
			Help: "Verified actions denied by the authorization gate, by action kind",
		}, []string{"action"}),
		EventsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "events_tracker_events_created_total",
			Help: "Events registered",
		}),
		ExpensesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "events_tracker_expenses_recorded_total",
			Help: "Expense submissions written to the ledger",
		}),
	}
}
