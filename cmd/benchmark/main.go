package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/limaJavier/sessiontable/pkg/model"
	"github.com/limaJavier/sessiontable/pkg/sat"
)

type ResultType int

const (
	solved ResultType = iota
	infeasible
	unknown
	failed
)

var resultTypes = map[ResultType]string{
	solved:     "solved",
	infeasible: "infeasible",
	unknown:    "unknown",
	failed:     "failed",
}

type TestMetadata struct {
	Name         string
	Rooms        int
	Teachers     int
	Groups       int
	Courses      int
	Requirements int
}

type BenchmarkResult struct {
	Engine      string
	Test        TestMetadata
	Events      int
	Variables   uint64
	Constraints int
	Duration    int64 // milliseconds
	Result      ResultType
}

func main() {
	directoryPtr := flag.String("dir", "", "Directory holding the request files (*.json) to benchmark")
	outPtr := flag.String("out", "benchmark_results.csv", "Path of the CSV file where results will be written")
	budgetPtr := flag.Duration("budget", model.DefaultTimeBudget, "Time budget granted to the engine on each run")
	flag.Parse()

	if *directoryPtr == "" {
		log.Fatal("a request directory must be specified")
	}

	tests := getTests(*directoryPtr)
	engines := sat.InProcessEngineNames()
	results := make([]BenchmarkResult, 0, len(tests)*len(engines))

	for _, test := range tests {
		request := lo.Must(model.InputFromJson(test.Name))
		for _, engineName := range engines {
			fmt.Printf("Benchmarking test \"%v\" with engine \"%v\"\n", test.Name, engineName)

			engine := lo.Must(sat.NewEngine(engineName, nil))
			timetabler := model.NewTimetabler(engine, model.WithTimeBudget(*budgetPtr))
			result := measure(context.Background(), timetabler, request)
			result.Engine = engineName
			result.Test = test
			results = append(results, result)
		}
	}

	file, err := os.Create(*outPtr)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}
}

func getTests(directory string) []TestMetadata {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	testFiles = lo.Filter(testFiles, func(file os.DirEntry, _ int) bool {
		return !file.IsDir() && strings.HasSuffix(file.Name(), ".json")
	})

	return lo.Map(testFiles, func(file os.DirEntry, _ int) TestMetadata {
		filename := filepath.Join(directory, file.Name())
		request, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		return TestMetadata{
			Name:         filename,
			Rooms:        len(request.Resources.Rooms),
			Teachers:     len(request.Resources.Teachers),
			Groups:       len(request.Resources.Groups),
			Courses:      len(request.Resources.Courses),
			Requirements: len(request.Requirements),
		}
	})
}

// measure records the model size and the wall-clock time of a full build
func measure(ctx context.Context, timetabler model.Timetabler, request model.Request) BenchmarkResult {
	var result BenchmarkResult

	constraintModel, err := timetabler.Model(ctx, request)
	if err != nil {
		result.Result = resultOf(err)
		return result
	}
	result.Events = len(constraintModel.Events)
	result.Variables = constraintModel.Problem.Variables
	result.Constraints = len(constraintModel.Problem.Constraints)

	start := time.Now()
	_, err = timetabler.Build(ctx, request)
	result.Duration = time.Since(start).Milliseconds()
	result.Result = resultOf(err)

	return result
}

func resultOf(err error) ResultType {
	var noSolution model.NoSolutionError
	switch {
	case err == nil:
		return solved
	case errors.As(err, &noSolution):
		if noSolution.Reason == sat.Infeasible {
			return infeasible
		}
		return unknown
	case errors.Is(err, model.ErrUnsatisfiableEvent):
		return infeasible
	}
	return failed
}

func toCsv(output io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(output)

	header := []string{"Engine", "Test", "Rooms", "Teachers", "Groups", "Courses", "Requirements", "Events", "Variables", "Constraints", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Engine,
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Rooms),
			fmt.Sprintf("%d", result.Test.Teachers),
			fmt.Sprintf("%d", result.Test.Groups),
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Requirements),
			fmt.Sprintf("%d", result.Events),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Constraints),
			fmt.Sprintf("%d", result.Duration),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
