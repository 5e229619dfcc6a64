package sat

import (
	"context"
	"math/rand/v2"
	"os/exec"
	"slices"
	"testing"
	"time"

	"github.com/go-air/gini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCardinality(t *testing.T) {
	comparisons := []Comparison{Equal, AtMost, AtLeast}

	for _, n := range []int{1, 2, 3, 5, 7, 8} {
		for bound := 0; bound <= n+1; bound++ {
			for _, comparison := range comparisons {
				//** Arrange
				variables := make([]uint64, n)
				for i := range n {
					variables[i] = uint64(i)
				}
				constraint := Constraint{Variables: variables, Comparison: comparison, Bound: uint64(bound)}
				instance := Encode(Problem{Variables: uint64(n), Constraints: []Constraint{constraint}})

				g := gini.New()
				for i := range n {
					// Declare every problem variable, some encodings never mention them
					g.Add(giniLit(int64(i) + 1))
					g.Add(giniLit(-int64(i) - 1))
					g.Add(0)
				}
				for _, clause := range instance.Clauses {
					for _, literal := range clause {
						g.Add(giniLit(literal))
					}
					g.Add(0)
				}

				for mask := range 1 << n {
					assignment := make([]bool, n)
					for i := range n {
						assignment[i] = mask&(1<<i) != 0
						literal := giniLit(int64(i) + 1)
						if !assignment[i] {
							literal = literal.Not()
						}
						g.Assume(literal)
					}

					//** Act
					satisfiable := g.Solve() == 1

					//** Assert
					assert.Equal(t, constraint.Holds(assignment), satisfiable, "sum %v %v over %v", comparison, bound, assignment)
				}
			}
		}
	}
}

func TestEncodeKeepsProblemVariablesFirst(t *testing.T) {
	problem := Problem{
		Variables: 10,
		Constraints: []Constraint{
			{Variables: []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, Comparison: AtMost, Bound: 1},
		},
	}

	instance := Encode(problem)

	assert.Greater(t, instance.Variables, problem.Variables) // sequential counter registers
	solution := SATSolution{1, -2, -3, 11, -12}
	assert.Equal(t, []bool{true, false, false, false, false, false, false, false, false, false}, Decode(solution, problem.Variables))
}

func TestInProcessEngines(t *testing.T) {
	for _, name := range InProcessEngineNames() {
		t.Run(name, func(t *testing.T) {
			engine, err := NewEngine(name, nil)
			require.NoError(t, err)
			assert.Equal(t, name, engine.Name())

			t.Run("Random instances", func(t *testing.T) {
				randomExecution(t, engine)
			})

			t.Run("Empty problem", func(t *testing.T) {
				result, err := engine.Solve(context.Background(), Problem{}, time.Second)
				require.NoError(t, err)
				assert.Equal(t, Satisfied, result.Status)
			})

			t.Run("Unreachable bound", func(t *testing.T) {
				problem := Problem{Variables: 2, Constraints: []Constraint{{Variables: []uint64{0, 1}, Comparison: AtLeast, Bound: 3}}}
				result, err := engine.Solve(context.Background(), problem, time.Second)
				require.NoError(t, err)
				assert.Equal(t, Infeasible, result.Status)
			})
		})
	}
}

func TestProcessEngines(t *testing.T) {
	inProcess := InProcessEngineNames()
	for _, name := range EngineNames() {
		if slices.Contains(inProcess, name) {
			continue
		}
		t.Run(name, func(t *testing.T) {
			if _, err := exec.LookPath(executables[name].defaultPath); err != nil {
				t.Skipf("%v is not installed", executables[name].defaultPath)
			}
			engine, err := NewEngine(name, nil)
			require.NoError(t, err)

			randomExecution(t, engine)
		})
	}
}

func TestGiniHonoursBudget(t *testing.T) {
	engine := NewGiniEngine()

	start := time.Now()
	result, err := engine.Solve(context.Background(), Pigeonhole(13, 12), 50*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, Unknown, result.Status)
	assert.Nil(t, result.Assignment)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGiniHonoursCancellation(t *testing.T) {
	engine := NewGiniEngine()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	result, err := engine.Solve(ctx, Pigeonhole(13, 12), time.Minute)

	require.NoError(t, err)
	assert.Equal(t, Unknown, result.Status)

	// The engine is still usable afterwards
	result, err = engine.Solve(context.Background(), Pigeonhole(3, 3), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, Satisfied, result.Status)
}

func TestNewEngineRejectsUnknownNames(t *testing.T) {
	_, err := NewEngine("glucosesyrup", nil)
	assert.Error(t, err)
}

func TestNewEngineUsesConfiguredPath(t *testing.T) {
	engine, err := NewEngine("kissat", Paths{"kissat": "/opt/kissat/bin/kissat"})

	require.NoError(t, err)
	assert.Equal(t, "/opt/kissat/bin/kissat", engine.(*processEngine).path)
}

func TestParseSolution(t *testing.T) {
	t.Run("Competition format", func(t *testing.T) {
		output := "c comment\ns SATISFIABLE\nv 1 -2 3\nv -4 5 0\n"
		solution, err := parseSolution(output, true)
		require.NoError(t, err)
		assert.Equal(t, SATSolution{1, -2, 3, -4, 5}, solution)
	})

	t.Run("Output file format", func(t *testing.T) {
		solution, err := parseSolution("SAT\n-1 2 -3 0\n", false)
		require.NoError(t, err)
		assert.Equal(t, SATSolution{-1, 2, -3}, solution)
	})

	t.Run("Invalid literal", func(t *testing.T) {
		_, err := parseSolution("v 1 x 0\n", true)
		assert.Error(t, err)
	})
}

func randomExecution(t *testing.T, engine Engine) {
	rng := rand.New(rand.NewPCG(7, 11))

	for range 25 {
		//** Arrange
		blocks := rng.IntN(4) + 1
		blockSize := rng.IntN(3) + 1
		problem := GenerateProblem(rng, blocks, blockSize, rng.IntN(6))

		//** Act
		result, err := engine.Solve(context.Background(), problem, 10*time.Second)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, BruteForce(problem), result.Status)
		if result.Status == Satisfied {
			assert.True(t, Satisfies(problem, result.Assignment))
		}
	}
}
