package sat

import (
	"fmt"
	"strings"
)

// SATSolution holds the literals returned by a DIMACS solver (positive if the variable is true, negative otherwise)
type SATSolution []int64

// SAT is a CNF instance where variables are numbered from 1 to Variables
type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

type Comparison int

const (
	Equal Comparison = iota
	AtMost
	AtLeast
)

func (comparison Comparison) String() string {
	switch comparison {
	case Equal:
		return "=="
	case AtMost:
		return "<="
	case AtLeast:
		return ">="
	}
	return fmt.Sprintf("Comparison(%d)", int(comparison))
}

// Constraint is a linear (in)equality over a sum of boolean variables: sum(Variables) <Comparison> Bound.
// Variables are zero-based ids in [0, Problem.Variables).
type Constraint struct {
	Variables  []uint64
	Comparison Comparison
	Bound      uint64
}

// Holds reports whether the assignment satisfies the constraint
func (constraint Constraint) Holds(assignment []bool) bool {
	sum := uint64(0)
	for _, variable := range constraint.Variables {
		if variable < uint64(len(assignment)) && assignment[variable] {
			sum++
		}
	}

	switch constraint.Comparison {
	case Equal:
		return sum == constraint.Bound
	case AtMost:
		return sum <= constraint.Bound
	case AtLeast:
		return sum >= constraint.Bound
	}
	return false
}

// Problem is the constraint system handed to an Engine: boolean variables and linear constraints over them
type Problem struct {
	Variables   uint64
	Constraints []Constraint
}

// Satisfies reports whether assignment satisfies every constraint of the problem
func Satisfies(problem Problem, assignment []bool) bool {
	if uint64(len(assignment)) != problem.Variables {
		return false
	}
	for _, constraint := range problem.Constraints {
		if !constraint.Holds(assignment) {
			return false
		}
	}
	return true
}
