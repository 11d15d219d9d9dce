package workouts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	List(ctx context.Context, userID string) ([]Workout, error)
	Get(ctx context.Context, userID string, id int) (*Workout, error)
	Create(ctx context.Context, userID string, workout NewWorkout, maxPerDay int) (*Workout, error)
	Update(ctx context.Context, userID string, id int, workout NewWorkout) (*Workout, error)
	Delete(ctx context.Context, userID string, id int) error
	UpdateExercise(ctx context.Context, userID string, exerciseID int, exercise NewExercise) (*Exercise, error)
	DeleteExercise(ctx context.Context, userID string, exerciseID int) error
}

type Service struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
	maxPerDay      int
	now            func() time.Time
}

func NewService(repo workoutsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		maxPerDay:      MaxWorkoutsPerDay,
		now:            time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]Workout, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID string, id int) (*Workout, error) {
	w, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return w, nil
}

// Create stores a new workout dated at created_at, or now when absent.
// At most maxPerDay workouts are accepted per calendar day.
func (s *Service) Create(ctx context.Context, userID string, in validation.WorkoutInput) (*Workout, error) {
	draft := NewWorkout{
		Title:     in.Title,
		CreatedAt: in.CreatedAt.Or(s.now()),
		Exercises: ToNewExercises(in.Exercises),
	}

	created, err := s.repo.Create(ctx, userID, draft, s.maxPerDay)
	if err != nil {
		var limitErr *DailyLimitError
		if errors.As(err, &limitErr) {
			log.Debugf("user %s: %s", userID, limitErr)
			if s.metricsManager != nil {
				s.metricsManager.CounterAdmissionRejections.With(prometheus.Labels{"limit": "workouts_per_day"}).Inc()
			}
			return nil, apierr.AdmissionLimit(
				fmt.Sprintf("Limit of %d workouts per day reached", limitErr.Limit),
				http.StatusBadRequest,
			)
		}
		return nil, mapErr(err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsCreated.Inc()
	}
	return created, nil
}

// Update fully replaces the workout: exercises missing from the input are dropped.
func (s *Service) Update(ctx context.Context, userID string, id int, in validation.WorkoutInput) (*Workout, error) {
	draft := NewWorkout{
		Title:     in.Title,
		Exercises: ToNewExercises(in.Exercises),
	}
	if in.CreatedAt != nil {
		draft.CreatedAt = in.CreatedAt.Time
	}

	updated, err := s.repo.Update(ctx, userID, id, draft)
	if err != nil {
		return nil, mapErr(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int) error {
	return mapErr(s.repo.Delete(ctx, userID, id))
}

func (s *Service) UpdateExercise(ctx context.Context, userID string, exerciseID int, in validation.ExerciseInput) (*Exercise, error) {
	updated, err := s.repo.UpdateExercise(ctx, userID, exerciseID, ToNewExercise(in))
	if err != nil {
		return nil, mapErr(err)
	}
	return updated, nil
}

func (s *Service) DeleteExercise(ctx context.Context, userID string, exerciseID int) error {
	return mapErr(s.repo.DeleteExercise(ctx, userID, exerciseID))
}

func ToNewExercises(in []validation.ExerciseInput) []NewExercise {
	exercises := make([]NewExercise, 0, len(in))
	for _, e := range in {
		exercises = append(exercises, ToNewExercise(e))
	}
	return exercises
}

func ToNewExercise(in validation.ExerciseInput) NewExercise {
	sets := make([]NewSet, 0, len(in.Sets))
	for _, s := range in.Sets {
		sets = append(sets, NewSet{
			Reps:         s.Reps,
			Weight:       s.Weight,
			Duration:     s.Duration,
			Distance:     s.Distance,
			DistanceUnit: s.DistanceUnit,
		})
	}
	return NewExercise{
		Name: in.Name,
		Type: ExerciseType(in.Type),
		Sets: sets,
	}
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrWorkoutNotFound):
		return apierr.NotFound("Workout not found", err)
	case errors.Is(err, ErrExerciseNotFound):
		return apierr.NotFound("Exercise not found", err)
	default:
		return err
	}
}
