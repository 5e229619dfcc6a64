package model

import "math"

type permutationGeneratorImplementation struct {
	domains []uint64
}

func (generator permutationGeneratorImplementation) ConstrainedPermutations(constraints []func(permutation []uint64) bool) [][]uint64 {
	permutations := make([][]uint64, 0)

	permutation := make([]uint64, len(generator.domains))
	for i := range permutation {
		permutation[i] = math.MaxUint64
	}

	generator.constrainedPermutations(constraints, 0, permutation, &permutations)
	return permutations
}

func (generator permutationGeneratorImplementation) constrainedPermutations(
	constraints []func(permutation []uint64) bool,
	currentDomain int,
	permutation []uint64,
	permutations *[][]uint64) {

	if currentDomain >= len(generator.domains) {
		permutationCopy := make([]uint64, len(permutation))
		copy(permutationCopy, permutation)
		*permutations = append(*permutations, permutationCopy)
		return
	}

	for i := range generator.domains[currentDomain] {
		permutation[currentDomain] = i
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(permutation) {
				constraintViolated = true
				break
			}
		}

		if constraintViolated {
			continue
		}

		generator.constrainedPermutations(constraints, currentDomain+1, permutation, permutations)
	}

	permutation[currentDomain] = math.MaxUint64
}
