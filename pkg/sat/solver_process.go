package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

type inputMode int

const (
	stdinInput    inputMode = iota // DIMACS is fed through the standard input
	fileInput                      // DIMACS is written to a file passed as the last argument
	fileInputOutput                // DIMACS file and model output file are passed as the last two arguments
)

// executable describes how a DIMACS solver binary is invoked
type executable struct {
	name        string
	defaultPath string
	args        []string
	input       inputMode
}

var executables = map[string]executable{
	"kissat":        {name: "kissat", defaultPath: "kissat", args: []string{"-q", "--relaxed"}, input: stdinInput},
	"cadical":       {name: "cadical", defaultPath: "cadical", args: []string{"-q"}, input: stdinInput},
	"cryptominisat": {name: "cryptominisat", defaultPath: "cryptominisat5", args: []string{"--verb", "0"}, input: stdinInput},
	"minisat":       {name: "minisat", defaultPath: "minisat", args: []string{"-verb=0"}, input: fileInputOutput},
	"glucosesimp":   {name: "glucosesimp", defaultPath: "glucose-simp", args: []string{"-verb=0"}, input: fileInputOutput},
	"slime":         {name: "slime", defaultPath: "slime", input: fileInput},
	"ortoolsat":     {name: "ortoolsat", defaultPath: "ortoolsat", input: fileInput},
}

type processEngine struct {
	executable executable
	path       string
}

func newProcessEngine(executable executable, path string) Engine {
	return &processEngine{executable: executable, path: path}
}

func (engine *processEngine) Name() string {
	return engine.executable.name
}

func (engine *processEngine) Solve(ctx context.Context, problem Problem, budget time.Duration) (Result, error) {
	if result, ok := trivialResult(problem); ok {
		return result, nil
	}

	ctx, cancel := withBudget(ctx, budget)
	defer cancel()

	dimacs := Encode(problem).ToDIMACS()
	args := append([]string{}, engine.executable.args...)

	var stdin *strings.Reader
	var outputPath string
	switch engine.executable.input {
	case stdinInput:
		stdin = strings.NewReader(dimacs)
	case fileInput, fileInputOutput:
		inputPath, err := writeTemp("dimacs-*.cnf", dimacs)
		if err != nil {
			return Result{}, err
		}
		defer os.Remove(inputPath)
		args = append(args, inputPath)

		if engine.executable.input == fileInputOutput {
			outputPath, err = writeTemp(engine.executable.name+"_output-*.cnf", "")
			if err != nil {
				return Result{}, err
			}
			defer os.Remove(outputPath)
			args = append(args, outputPath)
		}
	}

	cmd := exec.CommandContext(ctx, engine.path, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		// Killed because the budget expired or the caller gave up
		return Result{Status: Unknown}, nil
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Result{}, fmt.Errorf("cannot run %v: %w", engine.executable.name, err)
	}

	switch cmd.ProcessState.ExitCode() {
	case exitUnsatisfiable:
		return Result{Status: Infeasible}, nil
	case exitSatisfiable:
	default:
		if err != nil {
			return Result{}, fmt.Errorf("an error occurred during %v execution: %w : %v", engine.executable.name, err, stderr.String())
		}
		return Result{Status: Unknown}, nil
	}

	output := stdout.String()
	vLinesOnly := true
	if outputPath != "" {
		content, err := os.ReadFile(outputPath)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read output file: %w", err)
		}
		output = string(content)
		vLinesOnly = false
	}

	solution, err := parseSolution(output, vLinesOnly)
	if err != nil {
		return Result{}, fmt.Errorf("cannot parse %v output: %w", engine.executable.name, err)
	}
	return Result{Status: Satisfied, Assignment: Decode(solution, problem.Variables)}, nil
}

func writeTemp(pattern, content string) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return file.Name(), nil
}
