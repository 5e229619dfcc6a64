package sat

import (
	"context"
	"time"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

type gophersatEngine struct{}

// NewGophersatEngine returns an in-process engine that handles cardinality constraints natively (no CNF encoding)
func NewGophersatEngine() Engine {
	return &gophersatEngine{}
}

func (engine *gophersatEngine) Name() string {
	return "gophersat"
}

func (engine *gophersatEngine) Solve(ctx context.Context, problem Problem, budget time.Duration) (Result, error) {
	if result, ok := trivialResult(problem); ok {
		return result, nil
	}

	constraints, feasible := cardConstraints(problem)
	if !feasible {
		return Result{Status: Infeasible}, nil
	}
	if len(constraints) == 0 {
		return Result{Status: Satisfied, Assignment: make([]bool, problem.Variables)}, nil
	}

	ctx, cancel := withBudget(ctx, budget)
	defer cancel()

	type outcome struct {
		status solver.Status
		model  []bool
	}
	// Buffered so an abandoned solve can still deliver its outcome and exit
	outcomes := make(chan outcome, 1)

	go func() {
		s := solver.New(solver.ParseCardConstrs(constraints))
		status := s.Solve()
		if status == solver.Sat {
			outcomes <- outcome{status: status, model: s.Model()}
			return
		}
		outcomes <- outcome{status: status}
	}()

	select {
	case <-ctx.Done():
		// The solver owns no state shared with other requests; it is left to finish in the background
		return Result{Status: Unknown}, nil
	case result := <-outcomes:
		switch result.status {
		case solver.Sat:
			assignment := make([]bool, problem.Variables)
			for i := range assignment {
				assignment[i] = i < len(result.model) && result.model[i]
			}
			return Result{Status: Satisfied, Assignment: assignment}, nil
		case solver.Unsat:
			return Result{Status: Infeasible}, nil
		}
		return Result{Status: Unknown}, nil
	}
}

// cardConstraints rewrites the problem as gophersat "at least" constraints; feasible is false when a constraint can never hold
func cardConstraints(problem Problem) (constraints []solver.CardConstr, feasible bool) {
	constraints = make([]solver.CardConstr, 0, len(problem.Constraints))

	atLeast := func(literals []int, bound int) bool {
		if bound > len(literals) {
			return false
		}
		if bound > 0 {
			constraints = append(constraints, solver.CardConstr{Lits: literals, AtLeast: bound})
		}
		return true
	}
	// sum(x) <= k  <=>  sum(not x) >= n-k
	atMost := func(literals []int, bound int) bool {
		negated := lo.Map(literals, func(literal int, _ int) int { return -literal })
		return atLeast(negated, len(literals)-bound)
	}

	for _, constraint := range problem.Constraints {
		literals := lo.Map(constraint.Variables, func(variable uint64, _ int) int { return int(variable) + 1 })
		bound := int(constraint.Bound)

		ok := true
		switch constraint.Comparison {
		case Equal:
			ok = atLeast(literals, bound) && atMost(literals, bound)
		case AtMost:
			ok = atMost(literals, bound)
		case AtLeast:
			ok = atLeast(literals, bound)
		}
		if !ok {
			return nil, false
		}
	}

	return constraints, true
}
