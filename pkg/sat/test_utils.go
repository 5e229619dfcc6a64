package sat

import "math/rand/v2"

// GenerateProblem builds a random timetable-shaped problem: variables are split into blocks that must each
// have exactly one true variable, plus random at-most-one constraints across blocks
func GenerateProblem(rng *rand.Rand, blocks, blockSize, exclusions int) Problem {
	problem := Problem{
		Variables:   uint64(blocks * blockSize),
		Constraints: make([]Constraint, 0, blocks+exclusions),
	}

	for block := range blocks {
		variables := make([]uint64, 0, blockSize)
		for i := range blockSize {
			variables = append(variables, uint64(block*blockSize+i))
		}
		problem.Constraints = append(problem.Constraints, Constraint{Variables: variables, Comparison: Equal, Bound: 1})
	}

	for range exclusions {
		size := rng.IntN(4) + 2
		seen := make(map[uint64]bool)
		variables := make([]uint64, 0, size)
		for range size {
			variable := rng.Uint64N(problem.Variables)
			if !seen[variable] {
				seen[variable] = true
				variables = append(variables, variable)
			}
		}
		problem.Constraints = append(problem.Constraints, Constraint{Variables: variables, Comparison: AtMost, Bound: 1})
	}

	return problem
}

// BruteForce decides small problems by enumerating every assignment
func BruteForce(problem Problem) Status {
	assignment := make([]bool, problem.Variables)
	for mask := uint64(0); mask < 1<<problem.Variables; mask++ {
		for i := range assignment {
			assignment[i] = mask&(1<<i) != 0
		}
		if Satisfies(problem, assignment) {
			return Satisfied
		}
	}
	return Infeasible
}

// Pigeonhole returns the (hard to refute) problem of placing pigeons into fewer holes
func Pigeonhole(pigeons, holes int) Problem {
	problem := Problem{Variables: uint64(pigeons * holes)}
	variable := func(pigeon, hole int) uint64 { return uint64(pigeon*holes + hole) }

	for pigeon := range pigeons {
		variables := make([]uint64, 0, holes)
		for hole := range holes {
			variables = append(variables, variable(pigeon, hole))
		}
		problem.Constraints = append(problem.Constraints, Constraint{Variables: variables, Comparison: AtLeast, Bound: 1})
	}
	for hole := range holes {
		variables := make([]uint64, 0, pigeons)
		for pigeon := range pigeons {
			variables = append(variables, variable(pigeon, hole))
		}
		problem.Constraints = append(problem.Constraints, Constraint{Variables: variables, Comparison: AtMost, Bound: 1})
	}

	return problem
}
