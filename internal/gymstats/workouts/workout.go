package workouts

import (
	"errors"
	"fmt"
	"time"
)

type ExerciseType string

const (
	ExerciseTypeWeights    ExerciseType = "weights"
	ExerciseTypeBodyweight ExerciseType = "bodyweight"
	ExerciseTypeCardio     ExerciseType = "cardio"
)

const MaxWorkoutsPerDay = 3

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// DailyLimitError is returned when a user already logged the max number of workouts for a day.
type DailyLimitError struct {
	Day   time.Time
	Count int
	Limit int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily workouts limit reached: %d/%d on %s", e.Count, e.Limit, e.Day.Format(time.DateOnly))
}

// Set fields are all optional, their meaning depends on the parent exercise type:
// weights uses reps+weight, bodyweight uses reps, cardio uses duration+distance+distance_unit.
type Set struct {
	ID           int      `json:"id"`
	ExerciseID   int      `json:"exercise_id"`
	Reps         *int     `json:"reps"`
	Weight       *float64 `json:"weight"`
	Duration     *float64 `json:"duration"`
	Distance     *float64 `json:"distance"`
	DistanceUnit *string  `json:"distance_unit"`
}

type Exercise struct {
	ID         int          `json:"id"`
	WorkoutID  int          `json:"workout_id"`
	Name       string       `json:"name"`
	Type       ExerciseType `json:"type"`
	OrderIndex int          `json:"order_index"`
	Sets       []Set        `json:"sets"`
}

type Workout struct {
	ID        int        `json:"id"`
	UserID    string     `json:"user_id"`
	Title     *string    `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	Exercises []Exercise `json:"exercises"`
}

// Volume is the sum of weight*reps over all sets, missing values count as 0.
func (w Workout) Volume() float64 {
	var total float64
	for _, e := range w.Exercises {
		for _, s := range e.Sets {
			total += s.Volume()
		}
	}
	return total
}

func (s Set) Volume() float64 {
	if s.Weight == nil || s.Reps == nil {
		return 0
	}
	return *s.Weight * float64(*s.Reps)
}

// NewSet, NewExercise and NewWorkout are the write-side shapes, before ids are assigned.
type NewSet struct {
	Reps         *int
	Weight       *float64
	Duration     *float64
	Distance     *float64
	DistanceUnit *string
}

type NewExercise struct {
	Name string
	Type ExerciseType
	Sets []NewSet
}

type NewWorkout struct {
	Title     *string
	CreatedAt time.Time
	Exercises []NewExercise
}
