package forum

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	outcomeSuccess  = "success"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Metrics counts domain events. A nil *Metrics records nothing.
type Metrics struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	topics        prometheus.Counter
	posts         prometheus.Counter
}

// NewMetrics registers the forum counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ryob",
			Name:      "registrations_total",
			Help:      "User registrations by outcome.",
		}, []string{"outcome"}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ryob",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		topics: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ryob",
			Name:      "topics_created_total",
			Help:      "Topics created.",
		}),
		posts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ryob",
			Name:      "posts_created_total",
			Help:      "Posts created.",
		}),
	}
}

func (m *Metrics) registration(outcome string) {
	if m != nil {
		m.registrations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) login(outcome string) {
	if m != nil {
		m.logins.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) topicCreated() {
	if m != nil {
		m.topics.Inc()
	}
}

func (m *Metrics) postCreated() {
	if m != nil {
		m.posts.Inc()
	}
}
