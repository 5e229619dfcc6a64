package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/sessiontable/pkg/sat"
)

func TestConstraintEmission(t *testing.T) {
	//** Arrange
	// Two rooms, two groups with a session each and a shared teacher, on a 1x2 week
	request := Request{
		Metadata: Metadata{DaysPerWeek: 1, SlotsPerDay: 2},
		Resources: Resources{
			Rooms:    []Room{{Id: "R1", Capacity: 30, Type: LectureHall}, {Id: "R2", Capacity: 30, Type: LectureHall}},
			Teachers: []Teacher{{Id: "T1"}},
			Groups:   []Group{{Id: "G1", StudentCount: 20}, {Id: "G2", StudentCount: 20}},
			Courses:  []Course{{Id: "C1"}},
		},
		Requirements: []Requirement{
			{GroupId: "G1", TeacherId: "T1", CourseId: "C1", SessionsPerWeek: 1},
			{GroupId: "G2", TeacherId: "T1", CourseId: "C1", SessionsPerWeek: 1},
		},
	}

	//** Act
	model, err := NewTimetabler(statusEngine(sat.Unknown)).Model(context.Background(), request)

	//** Assert
	require.NoError(t, err)
	// Each event: 2 rooms x 2 slots
	require.Len(t, model.Placements, 8)
	assert.Equal(t, [][]uint64{{0, 1, 2, 3}, {4, 5, 6, 7}}, model.EventPlacements)

	completeness := model.Problem.Constraints[:2]
	assert.Equal(t, sat.Constraint{Variables: []uint64{0, 1, 2, 3}, Comparison: sat.Equal, Bound: 1}, completeness[0])
	assert.Equal(t, sat.Constraint{Variables: []uint64{4, 5, 6, 7}, Comparison: sat.Equal, Bound: 1}, completeness[1])

	// Room R1 at slot 0 is wanted by the first placement of each event
	assert.Equal(t, []uint64{0, 4}, model.Rooms.Variables(0, 0, 0))
	// The teacher is shared, so every placement at slot 1 competes
	assert.Equal(t, []uint64{1, 3, 5, 7}, model.Teachers.Variables(0, 0, 1))
	assert.Equal(t, []uint64{4, 6}, model.Groups.Variables(1, 0, 0))

	assert.Equal(t, []OccupancyKey{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}}, model.Rooms.Keys())
	assert.Equal(t, []OccupancyKey{{0, 0, 0}, {0, 0, 1}}, model.Teachers.Keys())

	// Completeness, then rooms, teachers and groups
	assert.Len(t, model.Problem.Constraints, 2+4+2+4)
	for _, constraint := range model.Problem.Constraints[2:] {
		assert.Equal(t, sat.AtMost, constraint.Comparison)
		assert.Equal(t, uint64(1), constraint.Bound)
	}
	assert.Equal(t, uint64(8), model.Problem.Variables)
}

func TestEveryOccupancyRegistrationIsCovered(t *testing.T) {
	//** Arrange
	model, err := NewTimetabler(statusEngine(sat.Unknown)).Model(context.Background(), weekRequest())
	require.NoError(t, err)

	//** Act
	// Count every (key, variable) pair the placements should have registered
	expected := 0
	for _, placement := range model.Placements {
		expected += int(model.Events[placement.Event].Duration)
	}

	registered := func(occupancy *Occupancy) int {
		count := 0
		for _, key := range occupancy.Keys() {
			count += len(occupancy.Variables(key.Resource, key.Day, key.Slot))
		}
		return count
	}

	//** Assert
	assert.Equal(t, expected, registered(model.Rooms))
	assert.Equal(t, expected, registered(model.Teachers))
	assert.Equal(t, expected, registered(model.Groups))

	for variable, placement := range model.Placements {
		event := model.Events[placement.Event]
		for offset := range event.Duration {
			assert.Contains(t, model.Rooms.Variables(placement.Room, placement.Day, placement.Slot+offset), uint64(variable))
			assert.Contains(t, model.Teachers.Variables(event.Teacher, placement.Day, placement.Slot+offset), uint64(variable))
			assert.Contains(t, model.Groups.Variables(event.Group, placement.Day, placement.Slot+offset), uint64(variable))
		}
	}
}
