package model

import (
	"cmp"
	"fmt"
	"slices"
)

// ScheduleRow is one occupied slot of a scheduled session. A session of duration D yields D rows and only the first has IsStart set.
type ScheduleRow struct {
	Day       uint64 `json:"day"`
	Slot      uint64 `json:"slot"`
	RoomId    string `json:"room_id"`
	TeacherId string `json:"teacher_id"`
	CourseId  string `json:"course_id"`
	GroupId   string `json:"group_id"`
	IsStart   bool   `json:"is_start"`
	Duration  uint64 `json:"duration"`
}

// materialize turns the true placement variables of assignment into rows sorted by day, slot and group id
func materialize(model *ConstraintModel, assignment []bool) ([]ScheduleRow, error) {
	if uint64(len(assignment)) != uint64(len(model.Placements)) {
		return nil, fmt.Errorf("assignment has %d values for %d placement variables", len(assignment), len(model.Placements))
	}

	rows := make([]ScheduleRow, 0)
	for variable, chosen := range assignment {
		if !chosen {
			continue
		}

		placement := model.Placements[variable]
		event := model.Events[placement.Event]
		for offset := range event.Duration {
			rows = append(rows, ScheduleRow{
				Day:       placement.Day,
				Slot:      placement.Slot + offset,
				RoomId:    model.registry.rooms.Id(placement.Room),
				TeacherId: model.registry.teachers.Id(event.Teacher),
				CourseId:  model.registry.courses.Id(event.Course),
				GroupId:   model.registry.groups.Id(event.Group),
				IsStart:   offset == 0,
				Duration:  event.Duration,
			})
		}
	}

	slices.SortStableFunc(rows, func(a, b ScheduleRow) int {
		return cmp.Or(
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.Slot, b.Slot),
			cmp.Compare(a.GroupId, b.GroupId),
		)
	})

	return rows, nil
}
