package sat

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

type Status int

const (
	Unknown Status = iota
	Satisfied
	Infeasible
)

func (status Status) String() string {
	switch status {
	case Satisfied:
		return "satisfied"
	case Infeasible:
		return "infeasible"
	}
	return "unknown"
}

// Result of a solve call. Assignment is only set when Status is Satisfied and has exactly Problem.Variables entries
type Result struct {
	Status     Status
	Assignment []bool
}

// Engine decides a Problem within a time budget.
// A budget that expires (or a cancelled context) yields Unknown with a nil error; errors are reserved for engine failures.
type Engine interface {
	Name() string
	Solve(ctx context.Context, problem Problem, budget time.Duration) (Result, error)
}

// Paths to the executables of the DIMACS based engines, keyed by engine name
type Paths map[string]string

var engines = map[string]func(paths Paths) Engine{
	"gini":      func(Paths) Engine { return NewGiniEngine() },
	"gophersat": func(Paths) Engine { return NewGophersatEngine() },
}

func init() {
	for name, executable := range executables {
		engines[name] = func(paths Paths) Engine {
			path, ok := paths[name]
			if !ok || path == "" {
				path = executable.defaultPath
			}
			return newProcessEngine(executable, path)
		}
	}
}

// EngineNames returns every engine accepted by NewEngine
func EngineNames() []string {
	names := lo.Keys(engines)
	slices.Sort(names)
	return names
}

// InProcessEngineNames returns the engines that need no external executable
func InProcessEngineNames() []string {
	return []string{"gini", "gophersat"}
}

func NewEngine(name string, paths Paths) (Engine, error) {
	constructor, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%q is not a valid engine, allowed values are %v", name, EngineNames())
	}
	return constructor(paths), nil
}

// withBudget derives the context an engine must honour; a non-positive budget means no deadline
func withBudget(ctx context.Context, budget time.Duration) (context.Context, context.CancelFunc) {
	if budget <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, budget)
}

// trivialResult handles problems without variables, where no engine call is needed
func trivialResult(problem Problem) (Result, bool) {
	if problem.Variables > 0 {
		return Result{}, false
	}
	if Satisfies(problem, []bool{}) {
		return Result{Status: Satisfied, Assignment: []bool{}}, true
	}
	return Result{Status: Infeasible}, true
}
