package validation

// SetInput leaves cross-field rules to the parent exercise type: a weights exercise
// holding a distance-only set is accepted. Reps is bounded by the int4 column.
type SetInput struct {
	Reps         *int     `json:"reps" validate:"omitnil,min=0,max=2147483647"`
	Weight       *float64 `json:"weight" validate:"omitnil,min=0"`
	Duration     *float64 `json:"duration" validate:"omitnil,min=0"`
	Distance     *float64 `json:"distance" validate:"omitnil,min=0"`
	DistanceUnit *string  `json:"distance_unit" validate:"omitnil,oneof=mi km m steps"`
}

type ExerciseInput struct {
	Name string     `json:"name" validate:"required,notblank"`
	Type string     `json:"type" validate:"required,oneof=weights bodyweight cardio"`
	Sets []SetInput `json:"sets" validate:"required,dive"`
}

type WorkoutInput struct {
	Title     *string         `json:"title"`
	CreatedAt *FlexTime       `json:"created_at"`
	Exercises []ExerciseInput `json:"exercises" validate:"required,dive"`
}

type WeightInput struct {
	Value float64   `json:"value" validate:"gt=0"`
	Date  *FlexTime `json:"date"`
}

type WeightUpdateInput struct {
	Value float64 `json:"value" validate:"gt=0"`
}

type SavedWorkoutInput struct {
	Title     string          `json:"title" validate:"required,notblank,max=200"`
	Exercises []ExerciseInput `json:"exercises" validate:"required,dive"`
}

type SavedExerciseInput struct {
	Name string     `json:"name" validate:"required,notblank"`
	Type string     `json:"type" validate:"required,oneof=weights bodyweight cardio"`
	Sets []SetInput `json:"sets" validate:"required,dive"`
}
