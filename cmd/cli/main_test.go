package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/sessiontable/pkg/model"
	"github.com/limaJavier/sessiontable/pkg/sat"
)

const requestTemplate = `{
	"metadata": {"days_per_week": 1, "slots_per_day": 2},
	"resources": {
		"rooms": [{"id": "R1", "capacity": 30, "type": "lecture_hall"}],
		"teachers": [{"id": "T1", "name": "Ada"}],
		"groups": [{"id": "G1", "student_count": %d}],
		"courses": [{"id": "C1", "name": "Algebra"}]
	},
	"requirements": [{"group_id": "G1", "teacher_id": "T1", "course_id": "C1", "sessions_per_week": %d}]
}`

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSolved, exitCode(nil))
	assert.Equal(t, exitInfeasible, exitCode(model.NoSolutionError{Reason: sat.Infeasible}))
	assert.Equal(t, exitUnknown, exitCode(fmt.Errorf("wrapped: %w", model.NoSolutionError{Reason: sat.Unknown})))
	assert.Equal(t, exitInfeasible, exitCode(model.UnsatisfiableEventError{}))
	assert.Equal(t, exitRequestError, exitCode(model.UnknownEntityReferenceError{}))
	assert.Equal(t, exitRequestError, exitCode(model.InvalidRequestError{}))
}

func TestRun(t *testing.T) {
	cases := []struct {
		name      string
		groupSize int
		sessions  int
		engine    string
		code      int
		status    string
	}{
		{name: "Solved", groupSize: 20, sessions: 2, engine: "gini", code: exitSolved, status: model.StatusSuccess},
		{name: "Infeasible", groupSize: 20, sessions: 3, engine: "gophersat", code: exitInfeasible, status: model.StatusError},
		{name: "Unplaceable", groupSize: 40, sessions: 1, engine: "gini", code: exitInfeasible, status: model.StatusError},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			//** Arrange
			directory := t.TempDir()
			t.Chdir(directory)
			metricsFile := filepath.Join(directory, "metrics.prom")
			t.Setenv("METRICS_FILE", metricsFile)

			requestFile := filepath.Join(directory, "request.json")
			require.NoError(t, os.WriteFile(requestFile, []byte(fmt.Sprintf(requestTemplate, test.groupSize, test.sessions)), 0o644))
			outFile := filepath.Join(directory, "response.json")

			//** Act
			code := run(requestFile, outFile, "", test.engine)

			//** Assert
			assert.Equal(t, test.code, code)

			content, err := os.ReadFile(outFile)
			require.NoError(t, err)
			var response model.Response
			require.NoError(t, json.Unmarshal(content, &response))
			assert.Equal(t, test.status, response.Status)
			if test.status == model.StatusSuccess {
				assert.Len(t, response.Schedule, test.sessions)
			}

			assert.FileExists(t, metricsFile)
		})
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.Equal(t, exitRequestError, run("", "", "", ""))
	assert.Equal(t, exitRequestError, run("missing.json", "", "", ""))
	assert.Equal(t, exitRequestError, run("missing.json", "", "", "nonexistent"))
	assert.Equal(t, exitRequestError, run("missing.json", "", "missing.yaml", ""))
}
