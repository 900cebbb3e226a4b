package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/parlor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records turn loop activity.
type Metrics struct {
	registry *prometheus.Registry

	turns            prometheus.Counter
	eventsFired      *prometheus.CounterVec
	choicesPublished prometheus.Gauge
	choicesSelected  *prometheus.CounterVec
	depthMax         prometheus.Gauge

	maxDepth int
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parlor_turns_total",
			Help: "Total number of completed turns, re-entrant ones included.",
		}),
		eventsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parlor_events_fired_total",
			Help: "Total number of event rule firings.",
		}, []string{"rule"}),
		choicesPublished: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parlor_choices_published",
			Help: "Number of choices in the last published list.",
		}),
		choicesSelected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parlor_choices_selected_total",
			Help: "Total number of choices taken by the player.",
		}, []string{"topic"}),
		depthMax: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parlor_turn_depth_max",
			Help: "Deepest turn re-entry observed.",
		}),
	}
	m.registry.MustRegister(m.turns, m.eventsFired, m.choicesPublished, m.choicesSelected, m.depthMax)
	return m
}

// Registry returns the gatherer holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnStart: func(_ context.Context, e *domain.TurnEvent) {
			if e.Depth > m.maxDepth {
				m.maxDepth = e.Depth
				m.depthMax.Set(float64(e.Depth))
			}
		},
		OnTurnEnd: func(_ context.Context, _ *domain.TurnEvent) {
			m.turns.Inc()
		},
		OnEventFire: func(_ context.Context, e *domain.RuleEvent) {
			m.eventsFired.WithLabelValues(e.Rule).Inc()
		},
		OnChoicesPublished: func(_ context.Context, e *domain.ChoiceEvent) {
			m.choicesPublished.Set(float64(e.Count))
		},
		OnChoiceSelected: func(_ context.Context, e *domain.ChoiceEvent) {
			m.choicesSelected.WithLabelValues(e.Topic).Inc()
		},
	}
}

// WriteTextfile writes the metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
