package sat

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// How often a running gini solve is polled for completion or cancellation
const giniPollInterval = 5 * time.Millisecond

type giniEngine struct{}

// NewGiniEngine returns an in-process CDCL engine; cardinality constraints are CNF encoded
func NewGiniEngine() Engine {
	return &giniEngine{}
}

func (engine *giniEngine) Name() string {
	return "gini"
}

func (engine *giniEngine) Solve(ctx context.Context, problem Problem, budget time.Duration) (Result, error) {
	if result, ok := trivialResult(problem); ok {
		return result, nil
	}

	instance := Encode(problem)

	// Every request gets its own solver instance, so stopping one never affects another
	g := gini.New()
	mentioned := make([]bool, problem.Variables)
	for _, clause := range instance.Clauses {
		for _, literal := range clause {
			if variable := abs(literal); uint64(variable) <= problem.Variables {
				mentioned[variable-1] = true
			}
			g.Add(giniLit(literal))
		}
		g.Add(z.LitNull)
	}

	ctx, cancel := withBudget(ctx, budget)
	defer cancel()

	solve := g.GoSolve()
	ticker := time.NewTicker(giniPollInterval)
	defer ticker.Stop()

	var outcome int
poll:
	for {
		select {
		case <-ctx.Done():
			outcome = solve.Stop()
			break poll
		case <-ticker.C:
			if result, done := solve.Test(); done {
				outcome = result
				break poll
			}
		}
	}

	switch outcome {
	case 1:
		assignment := make([]bool, problem.Variables)
		for i := range assignment {
			// Variables absent from every clause are unconstrained; leave them false
			assignment[i] = mentioned[i] && g.Value(z.Var(i+1).Pos())
		}
		return Result{Status: Satisfied, Assignment: assignment}, nil
	case -1:
		return Result{Status: Infeasible}, nil
	}
	return Result{Status: Unknown}, nil
}

func abs(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}

func giniLit(literal int64) z.Lit {
	if literal < 0 {
		return z.Var(-literal).Neg()
	}
	return z.Var(literal).Pos()
}
