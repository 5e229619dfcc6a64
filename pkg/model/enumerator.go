package model

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Placement is the decision "Event occupies Room starting at Slot on Day". Its variable id is its position in ConstraintModel.Placements.
type Placement struct {
	Event uint64 `json:"event"`
	Room  uint64 `json:"room"`
	Day   uint64 `json:"day"`
	Slot  uint64 `json:"slot"`
}

// placementSpace is the outcome of enumeration: every surviving placement plus the occupancy registered for it
type placementSpace struct {
	placements      []Placement
	eventPlacements [][]uint64
	rooms           *Occupancy
	teachers        *Occupancy
	groups          *Occupancy
}

// candidatePlacements lists the (room, day, slot) triples an event may use, in room, day, slot order
func candidatePlacements(event Event, evaluator predicateEvaluator, generator permutationGenerator) [][]uint64 {
	return generator.ConstrainedPermutations([]func(permutation []uint64) bool{
		// Capacity
		func(permutation []uint64) bool {
			room := permutation[0]

			return room == math.MaxUint64 ||

				// Actual predicate
				evaluator.Fits(event, room)
		},
		// Room type
		func(permutation []uint64) bool {
			room := permutation[0]

			return room == math.MaxUint64 ||

				// Actual predicate
				evaluator.Suits(event, room)
		},
		// The whole session fits before the day ends
		func(permutation []uint64) bool {
			slot := permutation[2]

			return slot == math.MaxUint64 ||

				// Actual predicate
				evaluator.FitsInDay(slot, event.Duration)
		},
		// Teacher available on every spanned slot
		func(permutation []uint64) bool {
			day, slot := permutation[1], permutation[2]

			return day == math.MaxUint64 ||
				slot == math.MaxUint64 ||

				// Actual predicate
				evaluator.TeacherAvailable(event.Teacher, day, slot, event.Duration)
		},
	})
}

// enumeratePlacements computes the candidates of every event on up to workers goroutines, then registers them in event order.
// If some event has no candidate, the one with the lowest id is returned as unplaceable and nothing is registered.
func enumeratePlacements(
	ctx context.Context,
	events []Event,
	evaluator predicateEvaluator,
	rooms, teachers, groups, days, slots uint64,
	workers int,
) (space placementSpace, unplaceable *Event, err error) {
	candidates := make([][][]uint64, len(events))

	// Events above the lowest unplaceable one are skipped, lower ones still run, so the reported event does not depend on scheduling
	var lowestUnplaceable atomic.Uint64
	lowestUnplaceable.Store(math.MaxUint64)

	group, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}
	for i, event := range events {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			if event.Id > lowestUnplaceable.Load() {
				return nil
			}

			generator := newPermutationGenerator(rooms, days, slots)
			candidates[i] = candidatePlacements(event, evaluator, generator)

			if len(candidates[i]) == 0 {
				for {
					current := lowestUnplaceable.Load()
					if event.Id >= current || lowestUnplaceable.CompareAndSwap(current, event.Id) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return placementSpace{}, nil, err
	}

	if lowest := lowestUnplaceable.Load(); lowest != math.MaxUint64 {
		return placementSpace{}, &events[lowest], nil
	}

	space = placementSpace{
		placements:      make([]Placement, 0, lo.SumBy(candidates, func(eventCandidates [][]uint64) int { return len(eventCandidates) })),
		eventPlacements: make([][]uint64, len(events)),
		rooms:           newOccupancy(rooms, days, slots),
		teachers:        newOccupancy(teachers, days, slots),
		groups:          newOccupancy(groups, days, slots),
	}
	for i, event := range events {
		space.eventPlacements[i] = make([]uint64, 0, len(candidates[i]))
		for _, candidate := range candidates[i] {
			room, day, slot := candidate[0], candidate[1], candidate[2]
			variable := uint64(len(space.placements))

			space.placements = append(space.placements, Placement{Event: event.Id, Room: room, Day: day, Slot: slot})
			space.eventPlacements[i] = append(space.eventPlacements[i], variable)

			space.rooms.Register(variable, room, day, slot, event.Duration)
			space.teachers.Register(variable, event.Teacher, day, slot, event.Duration)
			space.groups.Register(variable, event.Group, day, slot, event.Duration)
		}
	}

	return space, nil, nil
}
