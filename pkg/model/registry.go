package model

import "github.com/samber/lo"

type EntityKind string

const (
	RoomEntity    EntityKind = "room"
	TeacherEntity EntityKind = "teacher"
	GroupEntity   EntityKind = "group"
	CourseEntity  EntityKind = "course"
)

// entityIndex is a bidirectional mapping between external ids and the dense indices [0, Len())
type entityIndex struct {
	ids     []string
	indices map[string]uint64
}

// Indices follow encounter order; a repeated id is rejected instead of shadowing the earlier record
func newEntityIndex(kind EntityKind, ids []string) (entityIndex, error) {
	index := entityIndex{
		ids:     make([]string, 0, len(ids)),
		indices: make(map[string]uint64, len(ids)),
	}
	for _, id := range ids {
		if _, ok := index.indices[id]; ok {
			return entityIndex{}, DuplicateEntityError{Entity: kind, Id: id}
		}
		index.indices[id] = uint64(len(index.ids))
		index.ids = append(index.ids, id)
	}
	return index, nil
}

func (index entityIndex) Index(id string) (uint64, bool) {
	i, ok := index.indices[id]
	return i, ok
}

func (index entityIndex) Id(i uint64) string {
	return index.ids[i]
}

func (index entityIndex) Len() uint64 {
	return uint64(len(index.ids))
}

// entityRegistry holds one entityIndex per resource kind. It is built once per request and never mutated afterwards.
type entityRegistry struct {
	rooms    entityIndex
	teachers entityIndex
	groups   entityIndex
	courses  entityIndex
}

func newEntityRegistry(resources Resources) (registry entityRegistry, err error) {
	if registry.rooms, err = newEntityIndex(RoomEntity, lo.Map(resources.Rooms, func(room Room, _ int) string { return room.Id })); err != nil {
		return entityRegistry{}, err
	}
	if registry.teachers, err = newEntityIndex(TeacherEntity, lo.Map(resources.Teachers, func(teacher Teacher, _ int) string { return teacher.Id })); err != nil {
		return entityRegistry{}, err
	}
	if registry.groups, err = newEntityIndex(GroupEntity, lo.Map(resources.Groups, func(group Group, _ int) string { return group.Id })); err != nil {
		return entityRegistry{}, err
	}
	if registry.courses, err = newEntityIndex(CourseEntity, lo.Map(resources.Courses, func(course Course, _ int) string { return course.Id })); err != nil {
		return entityRegistry{}, err
	}
	return registry, nil
}

func (registry entityRegistry) of(kind EntityKind) entityIndex {
	switch kind {
	case RoomEntity:
		return registry.rooms
	case TeacherEntity:
		return registry.teachers
	case GroupEntity:
		return registry.groups
	}
	return registry.courses
}

// resolve returns the index of id, or an UnknownEntityReferenceError naming the requirement that referenced it
func (registry entityRegistry) resolve(kind EntityKind, id string, requirement int) (uint64, error) {
	index, ok := registry.of(kind).Index(id)
	if !ok {
		return 0, UnknownEntityReferenceError{Entity: kind, Id: id, Requirement: requirement}
	}
	return index, nil
}
