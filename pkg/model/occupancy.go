package model

// OccupancyKey identifies one slot of one resource (a room, a teacher or a group)
type OccupancyKey struct {
	Resource uint64
	Day      uint64
	Slot     uint64
}

// Occupancy records, per (resource, day, slot), the placement variables that would use the resource at that slot if chosen.
// Every key has its own preallocated cell, so registration never hashes.
type Occupancy struct {
	indexer indexer
	cells   [][]uint64
}

func newOccupancy(resources, days, slots uint64) *Occupancy {
	indexer := newIndexer(resources, days, slots)
	return &Occupancy{
		indexer: indexer,
		cells:   make([][]uint64, indexer.Size()),
	}
}

// Register records the variable under every slot of [slot, slot+duration) of the given resource and day
func (occupancy *Occupancy) Register(variable, resource, day, slot, duration uint64) {
	for offset := range duration {
		index := occupancy.indexer.Index(resource, day, slot+offset)
		occupancy.cells[index] = append(occupancy.cells[index], variable)
	}
}

func (occupancy *Occupancy) Variables(resource, day, slot uint64) []uint64 {
	return occupancy.cells[occupancy.indexer.Index(resource, day, slot)]
}

// Keys returns every key holding at least one variable, ordered by resource, day and slot
func (occupancy *Occupancy) Keys() []OccupancyKey {
	keys := make([]OccupancyKey, 0)
	for index, variables := range occupancy.cells {
		if len(variables) == 0 {
			continue
		}
		resource, day, slot := occupancy.indexer.Attributes(uint64(index))
		keys = append(keys, OccupancyKey{Resource: resource, Day: day, Slot: slot})
	}
	return keys
}
