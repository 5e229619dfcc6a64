package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/limaJavier/sessiontable/pkg/sat"
)

// Sentinels for errors.Is; every typed error below matches exactly one of them
var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrDuplicateEntity        = errors.New("duplicate entity")
	ErrUnknownEntityReference = errors.New("unknown entity reference")
	ErrUnsatisfiableEvent     = errors.New("unsatisfiable event")
	ErrNoSolution             = errors.New("no solution")
)

const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeDuplicateEntity        = "DUPLICATE_ENTITY"
	CodeUnknownEntityReference = "UNKNOWN_ENTITY_REFERENCE"
	CodeUnsatisfiableEvent     = "UNSATISFIABLE_EVENT"
	CodeNoSolution             = "NO_SOLUTION"
	CodeInternal               = "INTERNAL_ERROR"
)

type InvalidRequestError struct {
	Problems []string
}

func (err InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %v", strings.Join(err.Problems, "; "))
}

func (err InvalidRequestError) Is(target error) bool { return target == ErrInvalidRequest }
func (err InvalidRequestError) Code() string         { return CodeInvalidRequest }

// DuplicateEntityError is returned when two records of the same kind share an id
type DuplicateEntityError struct {
	Entity EntityKind
	Id     string
}

func (err DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate %v id %q", err.Entity, err.Id)
}

func (err DuplicateEntityError) Is(target error) bool { return target == ErrDuplicateEntity }
func (err DuplicateEntityError) Code() string         { return CodeDuplicateEntity }

// UnknownEntityReferenceError is returned when a requirement names an id that no resource declares
type UnknownEntityReferenceError struct {
	Entity      EntityKind
	Id          string
	Requirement int
}

func (err UnknownEntityReferenceError) Error() string {
	return fmt.Sprintf("requirement %d references unknown %v %q", err.Requirement, err.Entity, err.Id)
}

func (err UnknownEntityReferenceError) Is(target error) bool { return target == ErrUnknownEntityReference }
func (err UnknownEntityReferenceError) Code() string         { return CodeUnknownEntityReference }

// UnsatisfiableEventError is returned when an event ends enumeration with no valid placement.
// Diagnostics holds what was collected before the failure, usually pointing at the cause.
type UnsatisfiableEventError struct {
	Event       uint64
	GroupId     string
	TeacherId   string
	CourseId    string
	Diagnostics []Diagnostic
}

func (err UnsatisfiableEventError) Error() string {
	return fmt.Sprintf("event %d (group %q, teacher %q, course %q) has no valid placement: check room capacity and type against the group, and the teacher's unavailable slots", err.Event, err.GroupId, err.TeacherId, err.CourseId)
}

func (err UnsatisfiableEventError) Is(target error) bool { return target == ErrUnsatisfiableEvent }
func (err UnsatisfiableEventError) Code() string         { return CodeUnsatisfiableEvent }

// NoSolutionError is returned when the engine proves the model infeasible or gives up within its budget.
// Reason tells both cases apart: only an Unknown reason may change with a larger budget.
type NoSolutionError struct {
	Reason      sat.Status
	Engine      string
	Diagnostics []Diagnostic
}

func (err NoSolutionError) Error() string {
	if err.Reason == sat.Infeasible {
		return fmt.Sprintf("no solution: %v proved the constraints cannot be satisfied together", err.Engine)
	}
	return fmt.Sprintf("no solution: %v found no assignment within the time budget", err.Engine)
}

func (err NoSolutionError) Is(target error) bool { return target == ErrNoSolution }
func (err NoSolutionError) Code() string         { return CodeNoSolution }

// ErrorCode maps an error returned by this package to its stable code
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeInternal
}
