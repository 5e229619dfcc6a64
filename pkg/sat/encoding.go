package sat

import "github.com/samber/lo"

// Below this size an at-most-one is encoded pairwise, above it through a sequential counter
const pairwiseThreshold = 6

type cnfEncoder struct {
	instance SAT
}

// Encode translates the linear constraints of a problem into CNF.
// Problem variable v becomes DIMACS variable v+1; auxiliary variables are numbered after Problem.Variables.
func Encode(problem Problem) SAT {
	encoder := cnfEncoder{
		instance: SAT{
			Variables: problem.Variables,
			Clauses:   make([][]int64, 0, len(problem.Constraints)),
		},
	}

	for _, constraint := range problem.Constraints {
		literals := lo.Map(constraint.Variables, func(variable uint64, _ int) int64 { return int64(variable) + 1 })
		bound := int(constraint.Bound)

		switch constraint.Comparison {
		case Equal:
			encoder.atLeast(literals, bound)
			encoder.atMost(literals, bound)
		case AtMost:
			encoder.atMost(literals, bound)
		case AtLeast:
			encoder.atLeast(literals, bound)
		}
	}

	return encoder.instance
}

func (encoder *cnfEncoder) fresh() int64 {
	encoder.instance.Variables++
	return int64(encoder.instance.Variables)
}

func (encoder *cnfEncoder) add(clause ...int64) {
	encoder.instance.Clauses = append(encoder.instance.Clauses, clause)
}

// contradiction adds a pair of clauses that no assignment satisfies
func (encoder *cnfEncoder) contradiction() {
	variable := encoder.fresh()
	encoder.add(variable)
	encoder.add(-variable)
}

func (encoder *cnfEncoder) atLeast(literals []int64, bound int) {
	switch {
	case bound <= 0:
	case bound > len(literals):
		encoder.contradiction()
	case bound == 1:
		encoder.add(append([]int64{}, literals...)...)
	default:
		// At least k of n literals are true iff at most n-k of their negations are true
		negated := lo.Map(literals, func(literal int64, _ int) int64 { return -literal })
		encoder.atMost(negated, len(literals)-bound)
	}
}

func (encoder *cnfEncoder) atMost(literals []int64, bound int) {
	n := len(literals)
	switch {
	case bound >= n:
	case bound == 0:
		for _, literal := range literals {
			encoder.add(-literal)
		}
	case bound == 1 && n <= pairwiseThreshold:
		for i := range n - 1 {
			for j := i + 1; j < n; j++ {
				encoder.add(-literals[i], -literals[j])
			}
		}
	default:
		encoder.sequentialCounter(literals, bound)
	}
}

// sequentialCounter encodes sum(literals) <= k with registers s[i][j] meaning "at least j+1 of the first i+1 literals are true" (Sinz, 2005)
func (encoder *cnfEncoder) sequentialCounter(literals []int64, k int) {
	n := len(literals)
	registers := make([][]int64, n-1)
	for i := range registers {
		registers[i] = make([]int64, k)
		for j := range k {
			registers[i][j] = encoder.fresh()
		}
	}

	encoder.add(-literals[0], registers[0][0])
	for j := 1; j < k; j++ {
		encoder.add(-registers[0][j])
	}

	for i := 1; i < n-1; i++ {
		encoder.add(-literals[i], registers[i][0])
		encoder.add(-registers[i-1][0], registers[i][0])
		for j := 1; j < k; j++ {
			encoder.add(-literals[i], -registers[i-1][j-1], registers[i][j])
			encoder.add(-registers[i-1][j], registers[i][j])
		}
		encoder.add(-literals[i], -registers[i-1][k-1])
	}

	encoder.add(-literals[n-1], -registers[n-2][k-1])
}

// Decode projects a solver's literals onto the problem variables, dropping auxiliary variables
func Decode(solution SATSolution, variables uint64) []bool {
	assignment := make([]bool, variables)
	for _, literal := range solution {
		if literal > 0 && uint64(literal) <= variables {
			assignment[literal-1] = true
		}
	}
	return assignment
}
