package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/limaJavier/sessiontable/internal/config"
	"github.com/limaJavier/sessiontable/internal/logger"
	"github.com/limaJavier/sessiontable/pkg/model"
	"github.com/limaJavier/sessiontable/pkg/sat"
)

const (
	exitSolved       = 10
	exitInfeasible   = 20
	exitUnknown      = 30
	exitUnverified   = 15
	exitRequestError = 1
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the request file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the response will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to a configuration file (json, yaml, toml or env); environment variables take precedence over it")
	enginePtr := flag.String("engine", "", fmt.Sprintf("Engine to use, overriding the ENGINE setting. Allowed values are: %v", strings.Join(sat.EngineNames(), ", ")))
	flag.Parse()

	os.Exit(run(*filePathPtr, *outFilePathPtr, *configPathPtr, strings.ToLower(*enginePtr)))
}

func run(filePath, outFile, configPath, engineName string) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("cannot load configuration: %v", err)
		return exitRequestError
	}
	if engineName != "" {
		cfg.Engine.Name = engineName
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Printf("cannot build logger: %v", err)
		return exitRequestError
	}
	defer appLogger.Sync()

	// Validate arguments
	if filePath == "" {
		appLogger.Error("an input file must be specified")
		return exitRequestError
	}
	engine, err := sat.NewEngine(cfg.Engine.Name, cfg.Engine.Paths)
	if err != nil {
		appLogger.Error("invalid engine", zap.Error(err))
		return exitRequestError
	}

	// Extract input
	request, err := model.InputFromJson(filePath)
	if err != nil {
		appLogger.Error("cannot parse input file", zap.String("file", filePath), zap.Error(err))
		return exitRequestError
	}

	// Initialize timetabler
	metrics := model.NewMetrics()
	options := []model.Option{
		model.WithLogger(appLogger),
		model.WithMetrics(metrics),
		model.WithTimeBudget(cfg.Engine.TimeBudget),
		model.WithPrecheck(cfg.Model.Precheck),
	}
	if cfg.Model.Workers > 0 {
		options = append(options, model.WithWorkers(cfg.Model.Workers))
	}
	timetabler := model.NewTimetabler(engine, options...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Build timetable
	schedule, err := timetabler.Build(ctx, request)
	code := exitCode(err)

	// Verify timetable correctness
	if err == nil && !timetabler.Verify(schedule, request) {
		appLogger.Error("schedule failed verification", zap.String("engine", engine.Name()))
		code = exitUnverified
		err = errors.New("the schedule produced by the engine failed verification")
	}

	if writeErr := writeResponse(model.NewResponse(schedule, err), outFile); writeErr != nil {
		appLogger.Error("cannot write response", zap.Error(writeErr))
		return exitRequestError
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, metrics.Registry()); err != nil {
			appLogger.Warn("cannot write metrics", zap.String("file", cfg.MetricsFile), zap.Error(err))
		}
	}

	return code
}

// exitCode extends the solver convention (10 solved, 20 unsatisfiable) to the other outcomes of a build
func exitCode(err error) int {
	var noSolution model.NoSolutionError
	switch {
	case err == nil:
		return exitSolved
	case errors.As(err, &noSolution):
		if noSolution.Reason == sat.Infeasible {
			return exitInfeasible
		}
		return exitUnknown
	case errors.Is(err, model.ErrUnsatisfiableEvent):
		return exitInfeasible
	}
	return exitRequestError
}

func writeResponse(response model.Response, outFile string) error {
	// Marshal output into json
	responseJson, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return err
	}

	// Verify outfile is empty, if so then write the response to the Standard Output
	if outFile == "" {
		fmt.Println(string(responseJson))
		return nil
	}
	return os.WriteFile(outFile, responseJson, 0666)
}
