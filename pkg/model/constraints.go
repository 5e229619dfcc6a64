package model

import "github.com/limaJavier/sessiontable/pkg/sat"

type constraintState struct {
	events          []Event
	eventPlacements [][]uint64

	rooms,
	teachers,
	groups *Occupancy
}

// Every event takes exactly one of its placements: sum(x_e) = 1
func completenessConstraints(state constraintState) []sat.Constraint {
	constraints := make([]sat.Constraint, 0, len(state.events))
	for _, event := range state.events {
		constraints = append(constraints, sat.Constraint{
			Variables:  state.eventPlacements[event.Id],
			Comparison: sat.Equal,
			Bound:      1,
		})
	}
	return constraints
}

// A room hosts at most one session per slot: sum(x_(r,d,t)) <= 1
func roomConstraints(state constraintState) []sat.Constraint {
	return exclusivityConstraints(state.rooms)
}

// A teacher teaches at most one session per slot: sum(x_(p,d,t)) <= 1
func teacherConstraints(state constraintState) []sat.Constraint {
	return exclusivityConstraints(state.teachers)
}

// A group attends at most one session per slot: sum(x_(g,d,t)) <= 1
func groupConstraints(state constraintState) []sat.Constraint {
	return exclusivityConstraints(state.groups)
}

func exclusivityConstraints(occupancy *Occupancy) []sat.Constraint {
	keys := occupancy.Keys()
	constraints := make([]sat.Constraint, 0, len(keys))
	for _, key := range keys {
		constraints = append(constraints, sat.Constraint{
			Variables:  occupancy.Variables(key.Resource, key.Day, key.Slot),
			Comparison: sat.AtMost,
			Bound:      1,
		})
	}
	return constraints
}

// buildProblem runs every constraint function on its own goroutine and concatenates the results in the given order
func buildProblem(variables uint64, constraints []func(state constraintState) []sat.Constraint, state constraintState) sat.Problem {
	type generated struct {
		position    int
		constraints []sat.Constraint
	}

	constraintsChannel := make(chan generated) // Channel to collect constraints

	// Execute constraints functions on different goroutines to improve performance
	for position, constraint := range constraints {
		go func() {
			constraintsChannel <- generated{position: position, constraints: constraint(state)}
		}()
	}

	// Collect generated constraints
	collected := make([][]sat.Constraint, len(constraints))
	for range constraints {
		result := <-constraintsChannel
		collected[result.position] = result.constraints
	}

	problem := sat.Problem{
		Variables:   variables,
		Constraints: make([]sat.Constraint, 0),
	}
	for _, constraints := range collected {
		problem.Constraints = append(problem.Constraints, constraints...)
	}
	return problem
}
