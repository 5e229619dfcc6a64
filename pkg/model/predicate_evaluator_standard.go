package model

type standardPredicateEvaluator struct {
	rooms     []Room
	blackouts blackouts
	slots     uint64
}

func (evaluator *standardPredicateEvaluator) Fits(event Event, room uint64) bool {
	return evaluator.rooms[room].Capacity >= event.GroupSize
}

func (evaluator *standardPredicateEvaluator) Suits(event Event, room uint64) bool {
	if event.RequiresLab {
		return evaluator.rooms[room].Type == ComputerLab
	}
	// Rooms of any other declared type satisfy neither branch
	return evaluator.rooms[room].Type == LectureHall
}

func (evaluator *standardPredicateEvaluator) FitsInDay(slot, duration uint64) bool {
	return duration <= evaluator.slots && slot <= evaluator.slots-duration
}

func (evaluator *standardPredicateEvaluator) TeacherAvailable(teacher, day, slot, duration uint64) bool {
	for offset := range duration {
		if slot+offset >= evaluator.slots || evaluator.blackouts.Blocked(teacher, day, slot+offset) {
			return false
		}
	}
	return true
}
