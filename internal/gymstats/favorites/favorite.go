package favorites

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitlog/internal/gymstats/validation"
)

// MaxSavedPerUser caps both saved workouts and saved exercises.
const MaxSavedPerUser = 100

var (
	ErrSavedWorkoutNotFound  = errors.New("saved workout not found")
	ErrSavedExerciseNotFound = errors.New("saved exercise not found")
	ErrTitleTaken            = errors.New("saved workout title already taken")
)

type CapReachedError struct {
	Kind  string
	Limit int
}

func (e *CapReachedError) Error() string {
	return fmt.Sprintf("saved %s limit of %d reached", e.Kind, e.Limit)
}

// TemplateSet and TemplateExercise are stored as JSON blobs, they never get row ids.
type TemplateSet struct {
	Reps         *int     `json:"reps"`
	Weight       *float64 `json:"weight"`
	Duration     *float64 `json:"duration"`
	Distance     *float64 `json:"distance"`
	DistanceUnit *string  `json:"distance_unit"`
}

type TemplateExercise struct {
	Name string        `json:"name"`
	Type string        `json:"type"`
	Sets []TemplateSet `json:"sets"`
}

type SavedWorkout struct {
	ID        int                `json:"id"`
	UserID    string             `json:"-"`
	Title     string             `json:"title"`
	Exercises []TemplateExercise `json:"exercises"`
	CreatedAt time.Time          `json:"created_at"`
}

type SavedExercise struct {
	ID        int           `json:"id"`
	UserID    string        `json:"-"`
	Name      string        `json:"name"`
	Type      string        `json:"type"`
	Sets      []TemplateSet `json:"sets"`
	CreatedAt time.Time     `json:"created_at"`
}

func ToTemplateExercises(in []validation.ExerciseInput) []TemplateExercise {
	exercises := make([]TemplateExercise, 0, len(in))
	for _, e := range in {
		exercises = append(exercises, TemplateExercise{
			Name: e.Name,
			Type: e.Type,
			Sets: ToTemplateSets(e.Sets),
		})
	}
	return exercises
}

func ToTemplateSets(in []validation.SetInput) []TemplateSet {
	sets := make([]TemplateSet, 0, len(in))
	for _, s := range in {
		sets = append(sets, TemplateSet{
			Reps:         s.Reps,
			Weight:       s.Weight,
			Duration:     s.Duration,
			Distance:     s.Distance,
			DistanceUnit: s.DistanceUnit,
		})
	}
	return sets
}
