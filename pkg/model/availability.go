package model

// blackouts is the per-teacher set of blocked (day, slot) pairs, stored as one flag per (teacher, day, slot) index
type blackouts struct {
	indexer indexer
	blocked []bool
}

// Pairs outside the week can never block a placement and are dropped; repeated pairs collapse into one
func newBlackouts(teachers []Teacher, registry entityRegistry, days, slots uint64) blackouts {
	indexer := newIndexer(registry.teachers.Len(), days, slots)
	blocked := make([]bool, indexer.Size())

	for _, teacher := range teachers {
		index, _ := registry.teachers.Index(teacher.Id)
		for _, pair := range teacher.UnavailableSlots {
			if len(pair) != 2 || pair[0] < 0 || pair[1] < 0 {
				continue
			}
			day, slot := uint64(pair[0]), uint64(pair[1])
			if day >= days || slot >= slots {
				continue
			}
			blocked[indexer.Index(index, day, slot)] = true
		}
	}

	return blackouts{indexer: indexer, blocked: blocked}
}

func (b blackouts) Blocked(teacher, day, slot uint64) bool {
	return b.blocked[b.indexer.Index(teacher, day, slot)]
}
