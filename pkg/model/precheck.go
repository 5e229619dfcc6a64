package model

import (
	"fmt"
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// overbookingDiagnostics reports teachers and groups that cannot give each of their events its own start time.
// Two events of the same teacher (or group) never start together, so every resource needs a matching between its
// events and the (day, slot) start times their placements allow that covers all of its events.
func overbookingDiagnostics(events []Event, space placementSpace, registry entityRegistry, slots uint64) ([]Diagnostic, error) {
	diagnostics := make([]Diagnostic, 0)

	for _, resource := range []struct {
		kind EntityKind
		of   func(event Event) uint64
	}{
		{kind: TeacherEntity, of: func(event Event) uint64 { return event.Teacher }},
		{kind: GroupEntity, of: func(event Event) uint64 { return event.Group }},
	} {
		eventsByResource := lo.GroupBy(events, resource.of)
		index := registry.of(resource.kind)

		for id := range index.Len() {
			resourceEvents := eventsByResource[id]
			if len(resourceEvents) < 2 {
				continue
			}

			starts := startTimes(resourceEvents, space, slots)
			matched, err := matchStartTimes(resourceEvents, starts)
			if err != nil {
				return nil, err
			}
			if matched == len(resourceEvents) {
				continue
			}

			diagnostics = append(diagnostics, Diagnostic{
				Kind:        ResourceOverbooked,
				Message:     fmt.Sprintf("%d events but at most %d of them can start at distinct times", len(resourceEvents), matched),
				Entity:      resource.kind,
				EntityId:    index.Id(id),
				Requirement: -1,
				Events:      lo.Map(resourceEvents, func(event Event, _ int) uint64 { return event.Id }),
			})
		}
	}

	return diagnostics, nil
}

// startTimes maps every event to the set of (day*slots + slot) start times its placements allow
func startTimes(events []Event, space placementSpace, slots uint64) map[uint64]map[uint64]bool {
	starts := make(map[uint64]map[uint64]bool, len(events))
	for _, event := range events {
		starts[event.Id] = make(map[uint64]bool)
		for _, variable := range space.eventPlacements[event.Id] {
			placement := space.placements[variable]
			starts[event.Id][placement.Day*slots+placement.Slot] = true
		}
	}
	return starts
}

func matchStartTimes(events []Event, starts map[uint64]map[uint64]bool) (int, error) {
	times := make([]uint64, 0)
	for _, eventStarts := range starts {
		times = append(times, lo.Keys(eventStarts)...)
	}
	times = lo.Uniq(times)
	slices.Sort(times)

	// Build neighbors predicate based on allowed start times
	neighbors := func(eventAny any, timeAny any) (bool, error) {
		event := eventAny.(uint64)
		time := timeAny.(uint64)

		return starts[event][time], nil
	}

	// Transform events and times to slices of any
	eventsAny := lo.Map(events, func(event Event, _ int) any { return event.Id })
	timesAny := lo.Map(times, func(time uint64, _ int) any { return time })

	graph, err := bipartitegraph.NewBipartiteGraph(eventsAny, timesAny, neighbors)
	if err != nil {
		return 0, err
	}

	return len(graph.LargestMatching()), nil
}
