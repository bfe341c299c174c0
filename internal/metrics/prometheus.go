package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements Recorder backed by prometheus counters.
type PrometheusRecorder struct {
	usersRegistered prometheus.Counter
	logins          *prometheus.CounterVec
	tokensRejected  prometheus.Counter
	groups          *prometheus.CounterVec
	tasks           *prometheus.CounterVec
}

// NewPrometheus returns a Recorder registered on the given registerer.
// Pass prometheus.DefaultRegisterer in production.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		usersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_users_registered_total",
			Help: "Total number of registered users.",
		}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_logins_total",
			Help: "Total number of login attempts by result.",
		}, []string{"result"}),
		tokensRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_tokens_rejected_total",
			Help: "Total number of rejected bearer tokens.",
		}),
		groups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_groups_total",
			Help: "Total number of group lifecycle events.",
		}, []string{"event"}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_tasks_total",
			Help: "Total number of task lifecycle events.",
		}, []string{"event"}),
	}
}

// IncUserRegistered increments the registered users counter.
func (p *PrometheusRecorder) IncUserRegistered() { p.usersRegistered.Inc() }

// IncLoginSuccess increments the successful logins counter.
func (p *PrometheusRecorder) IncLoginSuccess() { p.logins.WithLabelValues("success").Inc() }

// IncLoginFailure increments the failed logins counter.
func (p *PrometheusRecorder) IncLoginFailure() { p.logins.WithLabelValues("failure").Inc() }

// IncTokenRejected increments the rejected tokens counter.
func (p *PrometheusRecorder) IncTokenRejected() { p.tokensRejected.Inc() }

// IncGroupCreated increments the groups created counter.
func (p *PrometheusRecorder) IncGroupCreated() { p.groups.WithLabelValues("created").Inc() }

// IncGroupDeleted increments the groups deleted counter.
func (p *PrometheusRecorder) IncGroupDeleted() { p.groups.WithLabelValues("deleted").Inc() }

// IncTaskCreated increments the tasks created counter.
func (p *PrometheusRecorder) IncTaskCreated() { p.tasks.WithLabelValues("created").Inc() }

// IncTaskCompleted increments the tasks completed counter.
func (p *PrometheusRecorder) IncTaskCompleted() { p.tasks.WithLabelValues("completed").Inc() }

// IncTaskDeleted increments the tasks deleted counter.
func (p *PrometheusRecorder) IncTaskDeleted() { p.tasks.WithLabelValues("deleted").Inc() }
