package model

type indexerImplementation struct {
	resources uint64
	days      uint64
	slots     uint64
}

func (indexer *indexerImplementation) Index(resource, day, slot uint64) uint64 {
	return slot + indexer.slots*day + indexer.slots*indexer.days*resource
}

func (indexer *indexerImplementation) Attributes(index uint64) (resource, day, slot uint64) {
	slot = index % indexer.slots
	index = index / indexer.slots

	day = index % indexer.days
	index = index / indexer.days

	resource = index % indexer.resources

	return resource, day, slot
}

func (indexer *indexerImplementation) Size() uint64 {
	return indexer.resources * indexer.days * indexer.slots
}
