package model

import (
	"context"
	"time"

	"github.com/limaJavier/sessiontable/pkg/sat"
)

type Timetabler interface {
	// Build runs the whole pipeline: indexing, flattening, enumeration, constraint emission, solving and materialization
	Build(
		ctx context.Context,
		request Request,
	) (schedule Schedule, err error)

	// Model stops right before solving and returns the constraint system that would be handed to the engine
	Model(
		ctx context.Context,
		request Request,
	) (model *ConstraintModel, err error)

	Verify(
		schedule Schedule,
		request Request,
	) bool
}

// ConstraintModel is the request-scoped constraint system: one boolean variable per placement,
// an exactly-one constraint per event and an at-most-one constraint per occupied resource slot.
type ConstraintModel struct {
	Events []Event
	// Placements[v] is the placement encoded by variable v
	Placements []Placement
	// EventPlacements[e] are the variables of event e
	EventPlacements [][]uint64

	Rooms    *Occupancy
	Teachers *Occupancy
	Groups   *Occupancy

	Problem     sat.Problem
	Diagnostics []Diagnostic

	registry entityRegistry
}

type Stats struct {
	Events        int           `json:"events"`
	Variables     uint64        `json:"variables"`
	Constraints   int           `json:"constraints"`
	Engine        string        `json:"engine"`
	Status        string        `json:"status"`
	SolveDuration time.Duration `json:"solve_duration"`
}

type Schedule struct {
	Rows        []ScheduleRow `json:"schedule"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
	Stats       Stats         `json:"stats"`
}
