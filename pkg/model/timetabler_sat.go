package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/limaJavier/sessiontable/pkg/sat"
)

type satTimetabler struct {
	engine sat.Engine
	options
}

func NewTimetabler(engine sat.Engine, opts ...Option) Timetabler {
	timetabler := &satTimetabler{
		engine:  engine,
		options: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&timetabler.options)
	}
	return timetabler
}

func (timetabler *satTimetabler) Build(ctx context.Context, request Request) (Schedule, error) {
	logger := timetabler.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("engine", timetabler.engine.Name()),
	)

	schedule, err := timetabler.build(ctx, request, logger)
	timetabler.metrics.ObserveBuild(err)
	if err != nil {
		logger.Warn("build failed", zap.String("code", ErrorCode(err)), zap.Error(err))
		return Schedule{}, err
	}

	logger.Info("build finished",
		zap.Int("rows", len(schedule.Rows)),
		zap.Int("diagnostics", len(schedule.Diagnostics)),
		zap.Duration("solve_duration", schedule.Stats.SolveDuration),
	)
	return schedule, nil
}

func (timetabler *satTimetabler) Model(ctx context.Context, request Request) (*ConstraintModel, error) {
	return timetabler.model(ctx, request, timetabler.logger.With(zap.String("run_id", uuid.NewString())))
}

func (timetabler *satTimetabler) Verify(schedule Schedule, request Request) bool {
	return verify(schedule.Rows, request)
}

func (timetabler *satTimetabler) build(ctx context.Context, request Request, logger *zap.Logger) (Schedule, error) {
	//** Build constraint model
	model, err := timetabler.model(ctx, request, logger)
	if err != nil {
		return Schedule{}, err
	}

	//** Solve constraint model
	start := time.Now()
	result, err := timetabler.engine.Solve(ctx, model.Problem, timetabler.timeBudget)
	elapsed := time.Since(start)
	if err != nil {
		return Schedule{}, fmt.Errorf("%v engine failed: %w", timetabler.engine.Name(), err)
	}
	timetabler.metrics.ObserveSolve(timetabler.engine.Name(), result.Status.String(), elapsed)
	logger.Debug("solved", zap.Stringer("status", result.Status), zap.Duration("elapsed", elapsed))

	if result.Status != sat.Satisfied {
		return Schedule{}, NoSolutionError{
			Reason:      result.Status,
			Engine:      timetabler.engine.Name(),
			Diagnostics: model.Diagnostics,
		}
	}
	if !sat.Satisfies(model.Problem, result.Assignment) {
		return Schedule{}, fmt.Errorf("%v engine returned an assignment that violates the constraint model", timetabler.engine.Name())
	}

	//** Materialize schedule
	rows, err := materialize(model, result.Assignment)
	if err != nil {
		return Schedule{}, err
	}

	return Schedule{
		Rows:        rows,
		Diagnostics: model.Diagnostics,
		Stats: Stats{
			Events:        len(model.Events),
			Variables:     model.Problem.Variables,
			Constraints:   len(model.Problem.Constraints),
			Engine:        timetabler.engine.Name(),
			Status:        result.Status.String(),
			SolveDuration: elapsed,
		},
	}, nil
}

func (timetabler *satTimetabler) model(ctx context.Context, request Request, logger *zap.Logger) (*ConstraintModel, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	//** Index entities
	registry, err := newEntityRegistry(request.Resources)
	if err != nil {
		return nil, err
	}

	//** Extract attributes's domains
	days, slots := uint64(request.Metadata.DaysPerWeek), uint64(request.Metadata.SlotsPerDay)
	totalRooms, totalTeachers, totalGroups := registry.rooms.Len(), registry.teachers.Len(), registry.groups.Len()

	//** Initialize dependencies
	blackouts := newBlackouts(request.Resources.Teachers, registry, days, slots)
	evaluator := newPredicateEvaluator(request.Resources.Rooms, blackouts, slots)

	//** Flatten requirements into events
	events, diagnostics, err := flattenRequirements(request, registry, evaluator)
	if err != nil {
		return nil, err
	}
	logDiagnostics(logger, diagnostics)

	//** Enumerate placements
	space, unplaceable, err := enumeratePlacements(ctx, events, evaluator, totalRooms, totalTeachers, totalGroups, days, slots, timetabler.workers)
	if err != nil {
		return nil, err
	}
	if unplaceable != nil {
		return nil, UnsatisfiableEventError{
			Event:       unplaceable.Id,
			GroupId:     registry.groups.Id(unplaceable.Group),
			TeacherId:   registry.teachers.Id(unplaceable.Teacher),
			CourseId:    registry.courses.Id(unplaceable.Course),
			Diagnostics: diagnostics,
		}
	}

	if timetabler.precheck {
		overbooked, err := overbookingDiagnostics(events, space, registry, slots)
		if err != nil {
			return nil, err
		}
		logDiagnostics(logger, overbooked)
		diagnostics = append(diagnostics, overbooked...)
	}

	//** Emit constraints
	constraints := []func(state constraintState) []sat.Constraint{
		completenessConstraints,
		roomConstraints,
		teacherConstraints,
		groupConstraints,
	}

	state := constraintState{
		events:          events,
		eventPlacements: space.eventPlacements,
		rooms:           space.rooms,
		teachers:        space.teachers,
		groups:          space.groups,
	}

	problem := buildProblem(uint64(len(space.placements)), constraints, state)

	model := &ConstraintModel{
		Events:          events,
		Placements:      space.placements,
		EventPlacements: space.eventPlacements,
		Rooms:           space.rooms,
		Teachers:        space.teachers,
		Groups:          space.groups,
		Problem:         problem,
		Diagnostics:     diagnostics,
		registry:        registry,
	}
	timetabler.metrics.ObserveModel(model)

	logger.Debug("constraint model built",
		zap.Int("events", len(events)),
		zap.Uint64("variables", problem.Variables),
		zap.Int("constraints", len(problem.Constraints)),
	)
	return model, nil
}
