package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "boardgames"

// Metrics counts session activity in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	sessions *prometheus.CounterVec
	actions  *prometheus.CounterVec
	replayed prometheus.Histogram
	live     prometheus.Gauge
}

func New() *Metrics {
	that := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Sessions created, by game kind.",
		}, []string{"kind"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Submitted actions, by game kind and outcome.",
		}, []string{"kind", "outcome"}),
		replayed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "replay_actions",
			Help:      "Length of action logs replayed when a session is loaded from storage.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Sessions held in memory.",
		}),
	}

	that.registry.MustRegister(that.sessions, that.actions, that.replayed, that.live)

	return that
}

func (that *Metrics) SessionCreated(kind string) {
	that.sessions.WithLabelValues(kind).Inc()
}

// Action counts one submitted action. A rejected action is labelled rejected_<reason>, or plain rejected
// when the rule set gives none.
func (that *Metrics) Action(kind string, accepted bool, reason string) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
		if reason != "" {
			outcome += "_" + strings.ToLower(reason)
		}
	}

	that.actions.WithLabelValues(kind, outcome).Inc()
}

func (that *Metrics) Replayed(actions int) {
	that.replayed.Observe(float64(actions))
}

func (that *Metrics) SetLive(n int) {
	that.live.Set(float64(n))
}

// Lines renders every counter and gauge as "name{label=value,...} value", sorted. Histograms are
// reported by their sample count and sum.
func (that *Metrics) Lines() ([]string, error) {
	families, err := that.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("could not gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}

			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines,
					fmt.Sprintf("%s_count %d", name, h.GetSampleCount()),
					fmt.Sprintf("%s_sum %g", name, h.GetSampleSum()))
			}
		}
	}

	sort.Strings(lines)

	return lines, nil
}
