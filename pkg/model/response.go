package model

import "errors"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorBody is the failure part of a Response. Details carry the context needed to locate the cause (ids, event, reason).
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Response is the document returned to callers: the schedule on success, the error otherwise. It never holds a partial schedule.
type Response struct {
	Status      string        `json:"status"`
	Schedule    []ScheduleRow `json:"schedule,omitempty"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
	Stats       *Stats        `json:"stats,omitempty"`
	Error       *ErrorBody    `json:"error,omitempty"`
}

func NewResponse(schedule Schedule, err error) Response {
	if err == nil {
		rows := schedule.Rows
		if rows == nil {
			rows = []ScheduleRow{}
		}
		return Response{
			Status:      StatusSuccess,
			Schedule:    rows,
			Diagnostics: schedule.Diagnostics,
			Stats:       &schedule.Stats,
		}
	}

	body := &ErrorBody{
		Code:    ErrorCode(err),
		Message: err.Error(),
	}
	response := Response{Status: StatusError, Error: body}

	var (
		invalid       InvalidRequestError
		duplicate     DuplicateEntityError
		unknown       UnknownEntityReferenceError
		unsatisfiable UnsatisfiableEventError
		noSolution    NoSolutionError
	)
	switch {
	case errors.As(err, &invalid):
		body.Details = map[string]any{"problems": invalid.Problems}
	case errors.As(err, &duplicate):
		body.Details = map[string]any{"entity": duplicate.Entity, "id": duplicate.Id}
	case errors.As(err, &unknown):
		body.Details = map[string]any{"entity": unknown.Entity, "id": unknown.Id, "requirement": unknown.Requirement}
	case errors.As(err, &unsatisfiable):
		body.Details = map[string]any{
			"event":      unsatisfiable.Event,
			"group_id":   unsatisfiable.GroupId,
			"teacher_id": unsatisfiable.TeacherId,
			"course_id":  unsatisfiable.CourseId,
		}
		response.Diagnostics = unsatisfiable.Diagnostics
	case errors.As(err, &noSolution):
		body.Details = map[string]any{"reason": noSolution.Reason.String(), "engine": noSolution.Engine}
		response.Diagnostics = noSolution.Diagnostics
	}

	return response
}
