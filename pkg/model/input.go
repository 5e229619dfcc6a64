package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RoomType string

const (
	LectureHall RoomType = "lecture_hall"
	ComputerLab RoomType = "computer_lab"
)

type Metadata struct {
	DaysPerWeek int `mapstructure:"days_per_week" validate:"min=1"`
	SlotsPerDay int `mapstructure:"slots_per_day" validate:"min=1"`
}

type Room struct {
	Id       string   `mapstructure:"id" validate:"required"`
	Capacity int      `mapstructure:"capacity" validate:"min=0"`
	Type     RoomType `mapstructure:"type"`
}

type Teacher struct {
	Id               string  `mapstructure:"id" validate:"required"`
	Name             string  `mapstructure:"name"`
	UnavailableSlots [][]int `mapstructure:"unavailable_slots" validate:"dive,len=2"` // (day, slot) pairs
}

type Group struct {
	Id           string `mapstructure:"id" validate:"required"`
	StudentCount int    `mapstructure:"student_count" validate:"min=0"`
}

type Course struct {
	Id   string `mapstructure:"id" validate:"required"`
	Name string `mapstructure:"name"`
}

type Resources struct {
	Rooms    []Room    `mapstructure:"rooms" validate:"dive"`
	Teachers []Teacher `mapstructure:"teachers" validate:"dive"`
	Groups   []Group   `mapstructure:"groups" validate:"dive"`
	Courses  []Course  `mapstructure:"courses" validate:"dive"`
}

// Requirement is a weekly teaching need. A zero DurationSlots stands for a single slot.
type Requirement struct {
	GroupId         string `mapstructure:"group_id" validate:"required"`
	TeacherId       string `mapstructure:"teacher_id" validate:"required"`
	CourseId        string `mapstructure:"course_id" validate:"required"`
	SessionsPerWeek int    `mapstructure:"sessions_per_week" validate:"min=1"`
	DurationSlots   int    `mapstructure:"duration_slots" validate:"min=0"`
	RequiresLab     bool   `mapstructure:"requires_lab"`
}

func (requirement Requirement) Duration() uint64 {
	if requirement.DurationSlots == 0 {
		return 1
	}
	return uint64(requirement.DurationSlots)
}

type Request struct {
	Metadata     Metadata      `mapstructure:"metadata"`
	Resources    Resources     `mapstructure:"resources"`
	Requirements []Requirement `mapstructure:"requirements" validate:"dive"`
}

var validate = validator.New()

func InputFromJson(file string) (Request, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Request{}, err
	}
	return RequestFromJson(bytes)
}

func RequestFromJson(bytes []byte) (Request, error) {
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Request{}, err
	}

	var request Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // Numeric ids are accepted as strings
		Result:           &request,
	})
	if err != nil {
		return Request{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return Request{}, InvalidRequestError{Problems: []string{err.Error()}}
	}

	return request, nil
}

// Validate checks the data-model invariants of a request (positive counts, well formed unavailable slots)
func (request Request) Validate() error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	return InvalidRequestError{
		Problems: lo.Map(validationErrors, func(fieldError validator.FieldError, _ int) string {
			return fmt.Sprintf("%v must satisfy %v=%v (got %v)", fieldError.Namespace(), fieldError.Tag(), fieldError.Param(), fieldError.Value())
		}),
	}
}
