package model

import "go.uber.org/zap"

type DiagnosticKind string

const (
	// No room can ever hold the requirement's group with the required room type
	StructurallyUnsatisfiableRequirement DiagnosticKind = "STRUCTURALLY_UNSATISFIABLE_REQUIREMENT"
	// A teacher or group has more events than distinct start times available to them
	ResourceOverbooked DiagnosticKind = "RESOURCE_OVERBOOKED"
)

// Diagnostic is a non-fatal finding about the request. Requirement is -1 when the finding is not tied to one requirement.
type Diagnostic struct {
	Kind        DiagnosticKind `json:"kind"`
	Message     string         `json:"message"`
	Entity      EntityKind     `json:"entity,omitempty"`
	EntityId    string         `json:"entity_id,omitempty"`
	Requirement int            `json:"requirement"`
	Events      []uint64       `json:"events,omitempty"`
}

func logDiagnostics(logger *zap.Logger, diagnostics []Diagnostic) {
	for _, diagnostic := range diagnostics {
		logger.Warn("diagnostic",
			zap.String("kind", string(diagnostic.Kind)),
			zap.String("message", diagnostic.Message),
			zap.String("entity", string(diagnostic.Entity)),
			zap.String("entity_id", diagnostic.EntityId),
			zap.Int("requirement", diagnostic.Requirement),
			zap.Uint64s("events", diagnostic.Events),
		)
	}
}
