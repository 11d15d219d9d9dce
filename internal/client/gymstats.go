package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/2beens/fitlog/internal/gymstats/favorites"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/gymstats/views"
	"github.com/2beens/fitlog/internal/gymstats/weights"
	"github.com/2beens/fitlog/internal/gymstats/workouts"
)

func (c *Client) ListWeights(ctx context.Context) ([]weights.Weight, error) {
	var list []weights.Weight
	if err := c.do(ctx, "weights.list", http.MethodGet, "/weights", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateWeight(ctx context.Context, in validation.WeightInput) (*weights.Weight, error) {
	var w weights.Weight
	if err := c.do(ctx, "weights.create", http.MethodPost, "/weights", in, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) UpdateWeight(ctx context.Context, id int, in validation.WeightUpdateInput) (*weights.Weight, error) {
	var w weights.Weight
	if err := c.do(ctx, "weights.update", http.MethodPut, "/weights/"+strconv.Itoa(id), in, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) DeleteWeight(ctx context.Context, id int) error {
	return c.do(ctx, "weights.delete", http.MethodDelete, "/weights/"+strconv.Itoa(id), nil, nil, true)
}

func (c *Client) ListWorkouts(ctx context.Context) ([]workouts.Workout, error) {
	var list []workouts.Workout
	if err := c.do(ctx, "workouts.list", http.MethodGet, "/workouts", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetWorkout(ctx context.Context, id int) (*workouts.Workout, error) {
	var w workouts.Workout
	if err := c.do(ctx, "workouts.get", http.MethodGet, "/workouts/"+strconv.Itoa(id), nil, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) CreateWorkout(ctx context.Context, in validation.WorkoutInput) (*workouts.Workout, error) {
	var w workouts.Workout
	if err := c.do(ctx, "workouts.create", http.MethodPost, "/workouts", in, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, id int, in validation.WorkoutInput) (*workouts.Workout, error) {
	var w workouts.Workout
	if err := c.do(ctx, "workouts.update", http.MethodPut, "/workouts/"+strconv.Itoa(id), in, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, id int) error {
	return c.do(ctx, "workouts.delete", http.MethodDelete, "/workouts/"+strconv.Itoa(id), nil, nil, true)
}

func (c *Client) UpdateExercise(ctx context.Context, id int, in validation.ExerciseInput) (*workouts.Exercise, error) {
	var e workouts.Exercise
	if err := c.do(ctx, "exercises.update", http.MethodPut, "/exercises/"+strconv.Itoa(id), in, &e, true); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteExercise(ctx context.Context, id int) error {
	return c.do(ctx, "exercises.delete", http.MethodDelete, "/exercises/"+strconv.Itoa(id), nil, nil, true)
}

func (c *Client) ListSavedWorkouts(ctx context.Context) ([]favorites.SavedWorkout, error) {
	var list []favorites.SavedWorkout
	if err := c.do(ctx, "saved-workouts.list", http.MethodGet, "/saved-workouts", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) SaveWorkout(ctx context.Context, in validation.SavedWorkoutInput) (*favorites.SavedWorkout, error) {
	var saved favorites.SavedWorkout
	if err := c.do(ctx, "saved-workouts.create", http.MethodPost, "/saved-workouts", in, &saved, true); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteSavedWorkout(ctx context.Context, title string) error {
	path := "/saved-workouts/" + url.PathEscape(title)
	return c.do(ctx, "saved-workouts.delete", http.MethodDelete, path, nil, nil, true)
}

func (c *Client) ListSavedExercises(ctx context.Context) ([]favorites.SavedExercise, error) {
	var list []favorites.SavedExercise
	if err := c.do(ctx, "saved-exercises.list", http.MethodGet, "/saved-exercises", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) SaveExercise(ctx context.Context, in validation.SavedExerciseInput) (*favorites.SavedExercise, error) {
	var saved favorites.SavedExercise
	if err := c.do(ctx, "saved-exercises.create", http.MethodPost, "/saved-exercises", in, &saved, true); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteSavedExercise(ctx context.Context, id int) error {
	return c.do(ctx, "saved-exercises.delete", http.MethodDelete, "/saved-exercises/"+strconv.Itoa(id), nil, nil, true)
}

// StatsQuery narrows a stats view. Zero values mean all years, all time, session unit.
type StatsQuery struct {
	Year  int
	Range views.Range
	Unit  views.Unit
}

func (q StatsQuery) encode() string {
	v := url.Values{}
	if q.Year > 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if q.Range != "" {
		v.Set("range", string(q.Range))
	}
	if q.Unit != "" {
		v.Set("unit", string(q.Unit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// WeightStats returns the weight view, in the session display unit unless q says otherwise.
func (c *Client) WeightStats(ctx context.Context, q StatsQuery) (*views.WeightStats, error) {
	if q.Unit == "" {
		q.Unit = c.session.Unit()
	}
	var stats views.WeightStats
	if err := c.do(ctx, "stats.weights", http.MethodGet, "/stats/weights"+q.encode(), nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) WorkoutStats(ctx context.Context, q StatsQuery) (*views.WorkoutStats, error) {
	q.Unit = ""
	var stats views.WorkoutStats
	if err := c.do(ctx, "stats.workouts", http.MethodGet, "/stats/workouts"+q.encode(), nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}
