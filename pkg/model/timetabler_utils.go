package model

import "maps"

// sessionKey identifies interchangeable sessions: same group, teacher, course and duration, in a lab or not
type sessionKey struct {
	group, teacher, course, duration uint64
	lab                              bool
}

// verify checks a schedule against the request independently of the constraint model
func verify(rows []ScheduleRow, request Request) bool {
	if request.Validate() != nil {
		return false
	}

	registry, err := newEntityRegistry(request.Resources)
	if err != nil {
		return false
	}

	//** Extract attributes's domains
	days, slots := uint64(request.Metadata.DaysPerWeek), uint64(request.Metadata.SlotsPerDay)
	blackouts := newBlackouts(request.Resources.Teachers, registry, days, slots)

	//** Initialize assistance
	roomIndexer := newIndexer(registry.rooms.Len(), days, slots)
	teacherIndexer := newIndexer(registry.teachers.Len(), days, slots)
	groupIndexer := newIndexer(registry.groups.Len(), days, slots)

	roomAssistance := make([]bool, roomIndexer.Size())
	teacherAssistance := make([]bool, teacherIndexer.Size())
	groupRows := make([]int, groupIndexer.Size()) // Row position + 1 of the row booking the group at a slot, 0 if none

	type resolvedRow struct {
		room, teacher, group, course uint64
	}
	resolved := make([]resolvedRow, len(rows))

	for i, row := range rows {
		room, roomOk := registry.rooms.Index(row.RoomId)
		teacher, teacherOk := registry.teachers.Index(row.TeacherId)
		group, groupOk := registry.groups.Index(row.GroupId)
		course, courseOk := registry.courses.Index(row.CourseId)

		// Check that:
		// - Every id is declared
		// - Day and slot lie within the week
		// - Group fits in room
		// - Teacher is available in the day and slot
		// - Room, teacher and group are not already booked in the day and slot
		if !roomOk || !teacherOk || !groupOk || !courseOk ||
			row.Day >= days || row.Slot >= slots || row.Duration == 0 ||
			request.Resources.Rooms[room].Capacity < request.Resources.Groups[group].StudentCount ||
			blackouts.Blocked(teacher, row.Day, row.Slot) ||
			roomAssistance[roomIndexer.Index(room, row.Day, row.Slot)] ||
			teacherAssistance[teacherIndexer.Index(teacher, row.Day, row.Slot)] ||
			groupRows[groupIndexer.Index(group, row.Day, row.Slot)] != 0 {
			return false
		}

		roomAssistance[roomIndexer.Index(room, row.Day, row.Slot)] = true          // Store room assistance
		teacherAssistance[teacherIndexer.Index(teacher, row.Day, row.Slot)] = true // Store teacher assistance
		groupRows[groupIndexer.Index(group, row.Day, row.Slot)] = i + 1            // Store group assistance
		resolved[i] = resolvedRow{room: room, teacher: teacher, group: group, course: course}
	}

	//** Check span integrity: each start row is followed by Duration-1 contiguous rows of the same session, and no row is left over
	covered := make([]bool, len(rows))
	derivedSessions := make(map[sessionKey]int)
	for i, row := range rows {
		if !row.IsStart {
			continue
		}
		if row.Slot+row.Duration > slots {
			return false
		}

		for offset := range row.Duration {
			position := groupRows[groupIndexer.Index(resolved[i].group, row.Day, row.Slot+offset)] - 1
			if position < 0 || covered[position] || resolved[position] != resolved[i] ||
				rows[position].Duration != row.Duration || rows[position].IsStart != (offset == 0) {
				return false
			}
			covered[position] = true
		}

		roomType := request.Resources.Rooms[resolved[i].room].Type
		if roomType != LectureHall && roomType != ComputerLab {
			return false
		}
		derivedSessions[sessionKey{
			group:    resolved[i].group,
			teacher:  resolved[i].teacher,
			course:   resolved[i].course,
			duration: row.Duration,
			lab:      roomType == ComputerLab,
		}]++ // Store session taught
	}
	for _, isCovered := range covered {
		if !isCovered {
			return false
		}
	}

	//** Check whether the number of sessions taught for each key is equal to the number of sessions required
	requiredSessions := make(map[sessionKey]int)
	for _, requirement := range request.Requirements {
		group, groupOk := registry.groups.Index(requirement.GroupId)
		teacher, teacherOk := registry.teachers.Index(requirement.TeacherId)
		course, courseOk := registry.courses.Index(requirement.CourseId)
		if !groupOk || !teacherOk || !courseOk {
			return false
		}
		requiredSessions[sessionKey{
			group:    group,
			teacher:  teacher,
			course:   course,
			duration: requirement.Duration(),
			lab:      requirement.RequiresLab,
		}] += requirement.SessionsPerWeek
	}

	return maps.Equal(derivedSessions, requiredSessions)
}
