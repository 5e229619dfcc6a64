package model

type predicateEvaluator interface {
	// Checks whether the event's group size is smaller than or equal to the room's capacity (i.e. the group fits in the room)
	Fits(event Event, room uint64) bool

	// Checks whether the room's type matches the event: labs for lab sessions, lecture halls for everything else
	Suits(event Event, room uint64) bool

	// Checks whether a session of the given duration starting at slot ends before the day does
	FitsInDay(slot, duration uint64) bool

	// Checks whether the teacher is available on every slot of [slot, slot+duration) of the given day
	TeacherAvailable(teacher, day, slot, duration uint64) bool
}

func newPredicateEvaluator(rooms []Room, blackouts blackouts, slots uint64) predicateEvaluator {
	return &standardPredicateEvaluator{
		rooms:     rooms,
		blackouts: blackouts,
		slots:     slots,
	}
}
