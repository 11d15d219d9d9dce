package views

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth/authctx"
	"github.com/2beens/fitlog/internal/gymstats/weights"
	"github.com/2beens/fitlog/internal/gymstats/workouts"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/internal/users"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=stats_handler_mocks_test.go -package=views_test

type weightsLister interface {
	List(ctx context.Context, userID string) ([]weights.Weight, error)
}

type workoutsLister interface {
	List(ctx context.Context, userID string) ([]workouts.Workout, error)
}

type usersGetter interface {
	Get(ctx context.Context, id string) (*users.User, error)
}

type WeightEntry struct {
	ID        int        `json:"id"`
	Value     float64    `json:"value"`
	CreatedAt time.Time  `json:"created_at"`
	Delta     *float64   `json:"delta"`
	Color     DeltaColor `json:"color"`
}

type WeightStats struct {
	Unit     Unit             `json:"unit"`
	GoalMode users.GoalMode   `json:"goal_mode"`
	Years    []int            `json:"years"`
	Entries  []WeightEntry    `json:"entries"`
	Monthly  []MonthlyAverage `json:"monthly"`
}

type WorkoutStats struct {
	Years          []int            `json:"years"`
	WorkoutsCount  int              `json:"workouts_count"`
	ExercisesCount int              `json:"exercises_count"`
	SetsCount      int              `json:"sets_count"`
	TotalVolume    float64          `json:"total_volume"`
	MonthlyVolume  []MonthlyAverage `json:"monthly_volume"`
}

type StatsHandler struct {
	weights  weightsLister
	workouts workoutsLister
	users    usersGetter
}

func NewStatsHandler(weightsRepo weightsLister, workoutsRepo workoutsLister, usersRepo usersGetter) *StatsHandler {
	return &StatsHandler{
		weights:  weightsRepo,
		workouts: workoutsRepo,
		users:    usersRepo,
	}
}

func weightDate(w weights.Weight) time.Time { return w.CreatedAt }

func workoutDate(w workouts.Workout) time.Time { return w.CreatedAt }

// HandleWeights returns the filtered weight entries in the display unit, with
// deltas colored by the user's goal mode and monthly averages.
func (handler *StatsHandler) HandleWeights(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weights")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	year, rng, err := parseFilterParams(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	unit, err := ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		apierr.Write(w, apierr.Validation("Validation failed", map[string]any{"unit": "must be one of: kg, lb"}))
		return
	}
	span.SetAttributes(
		attribute.Int("filter.year", year),
		attribute.String("filter.range", string(rng)),
		attribute.String("unit", string(unit)),
	)

	user, err := handler.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			err = apierr.NotFound("User not found", err)
		}
		apierr.Write(w, err)
		return
	}

	all, err := handler.weights.List(ctx, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	filtered := Filter(all, year, rng, weightDate)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	values := make([]float64, 0, len(filtered))
	for _, wt := range filtered {
		values = append(values, Round1(ToDisplay(wt.Value, unit)))
	}
	deltas := Deltas(values, user.GoalMode)

	entries := make([]WeightEntry, 0, len(filtered))
	for i, wt := range filtered {
		entry := WeightEntry{
			ID:        wt.ID,
			Value:     values[i],
			CreatedAt: wt.CreatedAt,
			Color:     deltas[i].Color,
		}
		if deltas[i].Value != nil {
			d := Round1(*deltas[i].Value)
			entry.Delta = &d
		}
		entries = append(entries, entry)
	}

	monthly := MonthlyAverages(filtered, weightDate, func(wt weights.Weight) float64 {
		return ToDisplay(wt.Value, unit)
	})
	for i := range monthly {
		monthly[i].Average = Round1(monthly[i].Average)
	}

	pkg.WriteJSON(w, WeightStats{
		Unit:     unit,
		GoalMode: user.GoalMode,
		Years:    AvailableYears(all, weightDate),
		Entries:  entries,
		Monthly:  monthly,
	}, http.StatusOK)
}

// HandleWorkouts returns counts and volume for the filtered workouts.
func (handler *StatsHandler) HandleWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.workouts")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	year, rng, err := parseFilterParams(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	all, err := handler.workouts.List(ctx, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	filtered := Filter(all, year, rng, workoutDate)
	stats := WorkoutStats{
		Years:         AvailableYears(all, workoutDate),
		WorkoutsCount: len(filtered),
		TotalVolume:   TotalVolume(filtered),
		MonthlyVolume: MonthlyAverages(filtered, workoutDate, workouts.Workout.Volume),
	}
	for _, wo := range filtered {
		stats.ExercisesCount += len(wo.Exercises)
		for _, e := range wo.Exercises {
			stats.SetsCount += len(e.Sets)
		}
	}

	pkg.WriteJSON(w, stats, http.StatusOK)
}

func parseFilterParams(r *http.Request) (int, Range, error) {
	details := make(map[string]any)

	year, err := ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		details["year"] = "must be a year or " + AllYears
	}
	rng, err := ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		details["range"] = "must be one of: 1mo, 3mo, all"
	}

	if len(details) > 0 {
		return 0, "", apierr.Validation("Validation failed", details)
	}
	return year, rng, nil
}
