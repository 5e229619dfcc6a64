package sat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parseSolution extracts the model literals from a solver's output.
// With vLinesOnly only the competition-format "v ..." lines are read, otherwise every numeric token counts (minisat/glucose output files).
// Status words ("SAT", "s SATISFIABLE", ...) and the terminating 0 are skipped.
func parseSolution(solverOutput string, vLinesOnly bool) (SATSolution, error) {
	lines := strings.Split(solverOutput, "\n")
	if vLinesOnly {
		lines = lo.FilterMap(lines, func(line string, _ int) (string, bool) {
			line = strings.TrimSpace(line)
			return strings.TrimPrefix(line, "v"), len(line) > 0 && line[0] == 'v'
		})
	}

	solution := make(SATSolution, 0)
	for _, line := range lines {
		for _, field := range strings.Fields(line) {
			if field == "SAT" || field == "s" || field == "SATISFIABLE" {
				continue
			}
			value, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid literal in solver output: %q", field)
			}
			if value != 0 {
				solution = append(solution, value)
			}
		}
	}
	return solution, nil
}
