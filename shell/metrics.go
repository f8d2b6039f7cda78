package shell

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values of vfsh_commands_total
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusParseError = "parse_error"
	StatusUnknown    = "unknown_command"
)

// verb labels for lines that never reached a command; unknown verbs are
// folded into one label to keep cardinality bounded
const (
	parseVerb   = "-"
	unknownVerb = "?"
)

// Metrics holds the interpreter's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "vfsh",
				Name:      "commands_total",
				Help:      "Total number of executed command lines",
			},
			[]string{"verb", "status"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "vfsh",
				Name:      "command_duration_seconds",
				Help:      "Command execution time in seconds",
				Buckets:   []float64{.00001, .0001, .001, .01, .1},
			},
			[]string{"verb"},
		),
	}
}

func (m *Metrics) observe(verb, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(verb, status).Inc()
	m.CommandDuration.WithLabelValues(verb).Observe(elapsed.Seconds())
}
