package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestJson = `{
	"metadata": {"days_per_week": 2, "slots_per_day": 4},
	"resources": {
		"rooms": [{"id": "R1", "capacity": 30, "type": "lecture_hall"}, {"id": 7, "capacity": 20, "type": "computer_lab"}],
		"teachers": [{"id": "T1", "name": "Ada", "unavailable_slots": [[0, 1], [1, 3]]}],
		"groups": [{"id": "G1", "student_count": 18}],
		"courses": [{"id": "C1", "name": "Algebra"}]
	},
	"requirements": [
		{"group_id": "G1", "teacher_id": "T1", "course_id": "C1", "sessions_per_week": 2},
		{"group_id": "G1", "teacher_id": "T1", "course_id": "C1", "sessions_per_week": 1, "duration_slots": 2, "requires_lab": true}
	]
}`

func TestRequestFromJson(t *testing.T) {
	//** Act
	request, err := RequestFromJson([]byte(requestJson))

	//** Assert
	require.NoError(t, err)
	assert.NoError(t, request.Validate())

	assert.Equal(t, Metadata{DaysPerWeek: 2, SlotsPerDay: 4}, request.Metadata)
	assert.Equal(t, "7", request.Resources.Rooms[1].Id) // Numeric ids are read as strings
	assert.Equal(t, ComputerLab, request.Resources.Rooms[1].Type)
	assert.Equal(t, [][]int{{0, 1}, {1, 3}}, request.Resources.Teachers[0].UnavailableSlots)

	require.Len(t, request.Requirements, 2)
	assert.Equal(t, uint64(1), request.Requirements[0].Duration()) // Absent duration means a single slot
	assert.False(t, request.Requirements[0].RequiresLab)
	assert.Equal(t, uint64(2), request.Requirements[1].Duration())
	assert.True(t, request.Requirements[1].RequiresLab)
}

func TestInputFromJson(t *testing.T) {
	//** Arrange
	filename := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(filename, []byte(requestJson), 0o644))

	//** Act
	request, err := InputFromJson(filename)

	//** Assert
	require.NoError(t, err)
	assert.Len(t, request.Resources.Rooms, 2)

	//** Act
	_, err = InputFromJson(filepath.Join(t.TempDir(), "missing.json"))

	//** Assert
	assert.Error(t, err)
}

func TestRequestFromJsonRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"Not json":    `{"metadata": `,
		"Wrong type":  `{"metadata": {"days_per_week": "many"}}`,
		"Wrong shape": `{"requirements": [{"requires_lab": {"yes": true}}]}`,
	}

	for name, document := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := RequestFromJson([]byte(document))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(request *Request){
		"No days":            func(request *Request) { request.Metadata.DaysPerWeek = 0 },
		"No slots":           func(request *Request) { request.Metadata.SlotsPerDay = -1 },
		"Negative capacity":  func(request *Request) { request.Resources.Rooms[0].Capacity = -5 },
		"Negative size":      func(request *Request) { request.Resources.Groups[0].StudentCount = -1 },
		"Missing id":         func(request *Request) { request.Resources.Courses[0].Id = "" },
		"No sessions":        func(request *Request) { request.Requirements[0].SessionsPerWeek = 0 },
		"Negative duration":  func(request *Request) { request.Requirements[0].DurationSlots = -2 },
		"Malformed blackout": func(request *Request) { request.Resources.Teachers[0].UnavailableSlots = [][]int{{0, 1, 2}} },
	}

	for name, change := range cases {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			request := singleRoomRequest(30, 20, 1, 2)
			change(&request)

			//** Act
			err := request.Validate()

			//** Assert
			var invalid InvalidRequestError
			require.ErrorAs(t, err, &invalid)
			assert.Len(t, invalid.Problems, 1)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestEntityRegistry(t *testing.T) {
	//** Arrange
	request := weekRequest()

	//** Act
	registry, err := newEntityRegistry(request.Resources)

	//** Assert
	require.NoError(t, err)
	for i, room := range request.Resources.Rooms {
		index, ok := registry.rooms.Index(room.Id)
		assert.True(t, ok)
		assert.Equal(t, uint64(i), index) // Encounter order
		assert.Equal(t, room.Id, registry.rooms.Id(index))
	}
	assert.Equal(t, uint64(3), registry.teachers.Len())

	_, ok := registry.courses.Index("chemistry")
	assert.False(t, ok)

	_, err = registry.resolve(CourseEntity, "chemistry", 4)
	assert.Equal(t, UnknownEntityReferenceError{Entity: CourseEntity, Id: "chemistry", Requirement: 4}, err)

	//** Act
	request.Resources.Groups = append(request.Resources.Groups, Group{Id: "g2"})
	_, err = newEntityRegistry(request.Resources)

	//** Assert
	assert.Equal(t, DuplicateEntityError{Entity: GroupEntity, Id: "g2"}, err)
}
