package model

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeBudget is the wall-clock budget given to the engine when none is configured
const DefaultTimeBudget = 60 * time.Second

type options struct {
	logger     *zap.Logger
	metrics    *Metrics
	timeBudget time.Duration
	workers    int
	precheck   bool
}

type Option func(*options)

func defaultOptions() options {
	return options{
		logger:     zap.NewNop(),
		timeBudget: DefaultTimeBudget,
		workers:    runtime.GOMAXPROCS(0),
		precheck:   true,
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithTimeBudget bounds each solve; a non-positive budget leaves only the caller's context as a limit
func WithTimeBudget(budget time.Duration) Option {
	return func(o *options) {
		o.timeBudget = budget
	}
}

// WithWorkers bounds the goroutines enumerating placements; a non-positive value means no bound
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithPrecheck toggles the overbooking diagnostics computed before solving
func WithPrecheck(enabled bool) Option {
	return func(o *options) {
		o.precheck = enabled
	}
}
