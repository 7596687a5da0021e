package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	Operations         *prometheus.CounterVec
	RemindersSent      prometheus.Counter
	ChecklistGenerated prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on a specific registerer so tests can use an
// isolated registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_operations_total",
			Help: "Total store operations executed, labelled by operation name",
		}, []string{"op"}),
		RemindersSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_reminders_sent_total",
			Help: "Total reminders handed to the notification channel",
		}),
		ChecklistGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_checklist_requests_generated_total",
			Help: "Total document requests created by checklist generation",
		}),
	}
}

// IncOperation increments the counter for one named store operation.
func (m *Metrics) IncOperation(op string) {
	m.Operations.WithLabelValues(op).Inc()
}
