package model

// indexer interface is design to give a unique index to a (resource, day, slot) combination and vice versa.
// Indices are dense in [0, Size()), which lets per-slot bookkeeping live in flat preallocated arrays.
type indexer interface {
	// Returns a unique index to a (resource, day, slot) combination
	Index(resource, day, slot uint64) uint64
	// Returns the (resource, day, slot) combination of a unique index
	Attributes(index uint64) (resource, day, slot uint64)
	// Returns the number of distinct indices
	Size() uint64
}

func newIndexer(resources, days, slots uint64) indexer {
	return &indexerImplementation{
		resources: resources,
		days:      days,
		slots:     slots,
	}
}
