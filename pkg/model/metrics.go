package model

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the timetabler on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	builds        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	variables     prometheus.Histogram
	constraints   prometheus.Histogram
	diagnostics   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	builds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_builds_total",
		Help: "Total number of timetable builds by outcome",
	}, []string{"outcome"})

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_solve_duration_seconds",
		Help:    "Duration of engine solves in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"engine", "status"})

	variables := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_placement_variables",
		Help:    "Placement variables per constraint model",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	constraints := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_constraints",
		Help:    "Constraints per constraint model",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	diagnostics := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_diagnostics_total",
		Help: "Total number of diagnostics by kind",
	}, []string{"kind"})

	registry.MustRegister(builds, solveDuration, variables, constraints, diagnostics)

	return &Metrics{
		registry:      registry,
		builds:        builds,
		solveDuration: solveDuration,
		variables:     variables,
		constraints:   constraints,
		diagnostics:   diagnostics,
	}
}

// Registry exposes the registry for gathering (e.g. prometheus.WriteToTextfile)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveBuild counts a finished build under the code of its error, or "success"
func (m *Metrics) ObserveBuild(err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = ErrorCode(err)
	}
	m.builds.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveModel(model *ConstraintModel) {
	if m == nil {
		return
	}
	m.variables.Observe(float64(model.Problem.Variables))
	m.constraints.Observe(float64(len(model.Problem.Constraints)))
	for _, diagnostic := range model.Diagnostics {
		m.diagnostics.WithLabelValues(string(diagnostic.Kind)).Inc()
	}
}

func (m *Metrics) ObserveSolve(engine, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.solveDuration.WithLabelValues(engine, status).Observe(duration.Seconds())
}
