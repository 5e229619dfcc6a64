package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Event is one weekly session of a requirement, the unit that gets placed on the timetable.
// Events of the same requirement are interchangeable.
type Event struct {
	Id          uint64 `json:"id"`
	Requirement int    `json:"requirement"`
	Group       uint64 `json:"group"`
	Teacher     uint64 `json:"teacher"`
	Course      uint64 `json:"course"`
	Duration    uint64 `json:"duration"`
	RequiresLab bool   `json:"requires_lab"`
	GroupSize   int    `json:"group_size"`
}

// flattenRequirements expands every requirement into SessionsPerWeek events with sequential ids.
// A requirement no room can ever host only produces a diagnostic: its events are still generated, so
// enumeration reports them and every such requirement shows up among the diagnostics.
func flattenRequirements(request Request, registry entityRegistry, evaluator predicateEvaluator) ([]Event, []Diagnostic, error) {
	events := make([]Event, 0, lo.SumBy(request.Requirements, func(requirement Requirement) int { return requirement.SessionsPerWeek }))
	diagnostics := make([]Diagnostic, 0)

	for i, requirement := range request.Requirements {
		group, err := registry.resolve(GroupEntity, requirement.GroupId, i)
		if err != nil {
			return nil, nil, err
		}
		teacher, err := registry.resolve(TeacherEntity, requirement.TeacherId, i)
		if err != nil {
			return nil, nil, err
		}
		course, err := registry.resolve(CourseEntity, requirement.CourseId, i)
		if err != nil {
			return nil, nil, err
		}

		template := Event{
			Requirement: i,
			Group:       group,
			Teacher:     teacher,
			Course:      course,
			Duration:    requirement.Duration(),
			RequiresLab: requirement.RequiresLab,
			GroupSize:   request.Resources.Groups[group].StudentCount,
		}

		first := uint64(len(events))
		for range requirement.SessionsPerWeek {
			event := template
			event.Id = uint64(len(events))
			events = append(events, event)
		}

		hostable := lo.SomeBy(lo.Range(int(registry.rooms.Len())), func(room int) bool {
			return evaluator.Fits(template, uint64(room)) && evaluator.Suits(template, uint64(room))
		})
		if !hostable {
			diagnostics = append(diagnostics, Diagnostic{
				Kind:        StructurallyUnsatisfiableRequirement,
				Message:     fmt.Sprintf("no %v holds %d students", roomTypeFor(requirement.RequiresLab), template.GroupSize),
				Entity:      GroupEntity,
				EntityId:    requirement.GroupId,
				Requirement: i,
				Events:      lo.RangeFrom(first, requirement.SessionsPerWeek),
			})
		}
	}

	return events, diagnostics, nil
}

func roomTypeFor(requiresLab bool) RoomType {
	if requiresLab {
		return ComputerLab
	}
	return LectureHall
}
