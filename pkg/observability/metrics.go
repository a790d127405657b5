package observability

import (
	"context"
	"strings"
	"unicode"

	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records command executions.
type Metrics struct {
	Executions *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	InFlight   prometheus.Gauge

	// Resolve maps a typed name to a registered command name. When set,
	// names it rejects are counted as "unknown" so user input cannot grow
	// the label set.
	Resolve func(name string) (string, bool)
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botcmd_command_executions_total",
				Help: "Total number of executed command lines",
			},
			[]string{"command", "status", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "botcmd_command_duration_seconds",
				Help:    "Duration of command executions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "botcmd_commands_in_flight",
			Help: "Number of commands currently executing",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Executions, m.Duration, m.InFlight)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			m.InFlight.Inc()
		},
		OnCommandEnd: func(ctx context.Context, e *domain.CommandEvent) {
			m.InFlight.Dec()

			name := m.label(e.Command)
			status, result := "ok", e.ResultType.String()
			if e.Err != nil {
				status, result = "error", "none"
			}
			m.Executions.WithLabelValues(name, status, result).Inc()
			m.Duration.WithLabelValues(name).Observe(e.Duration.Seconds())
		},
	}
}

func (m *Metrics) label(line string) string {
	name := CommandName(line)
	if m.Resolve == nil || name == "none" {
		return name
	}
	if resolved, ok := m.Resolve(name); ok {
		return resolved
	}
	return "unknown"
}

// CommandName extracts the invoked name from a command line.
func CommandName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "none"
	}
	name := strings.TrimLeftFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if name == "" {
		return "none"
	}
	return strings.ToLower(name)
}
