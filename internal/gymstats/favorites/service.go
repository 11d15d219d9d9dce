package favorites

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=favorites_test

type favoritesRepo interface {
	ListWorkouts(ctx context.Context, userID string) ([]SavedWorkout, error)
	CreateWorkout(ctx context.Context, userID, title string, exercises []TemplateExercise, maxPerUser int) (*SavedWorkout, error)
	DeleteWorkoutByTitle(ctx context.Context, userID, title string) error
	ListExercises(ctx context.Context, userID string) ([]SavedExercise, error)
	CreateExercise(ctx context.Context, userID string, exercise TemplateExercise, maxPerUser int) (*SavedExercise, error)
	DeleteExercise(ctx context.Context, userID string, id int) error
}

type Service struct {
	repo           favoritesRepo
	metricsManager *metrics.Manager
	maxPerUser     int
}

func NewService(repo favoritesRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		maxPerUser:     MaxSavedPerUser,
	}
}

func (s *Service) ListWorkouts(ctx context.Context, userID string) ([]SavedWorkout, error) {
	return s.repo.ListWorkouts(ctx, userID)
}

func (s *Service) SaveWorkout(ctx context.Context, userID string, in validation.SavedWorkoutInput) (*SavedWorkout, error) {
	saved, err := s.repo.CreateWorkout(ctx, userID, in.Title, ToTemplateExercises(in.Exercises), s.maxPerUser)
	if err != nil {
		return nil, s.mapErr(userID, err)
	}
	return saved, nil
}

func (s *Service) DeleteWorkout(ctx context.Context, userID, title string) error {
	return s.mapErr(userID, s.repo.DeleteWorkoutByTitle(ctx, userID, title))
}

func (s *Service) ListExercises(ctx context.Context, userID string) ([]SavedExercise, error) {
	return s.repo.ListExercises(ctx, userID)
}

func (s *Service) SaveExercise(ctx context.Context, userID string, in validation.SavedExerciseInput) (*SavedExercise, error) {
	exercise := TemplateExercise{
		Name: in.Name,
		Type: in.Type,
		Sets: ToTemplateSets(in.Sets),
	}
	saved, err := s.repo.CreateExercise(ctx, userID, exercise, s.maxPerUser)
	if err != nil {
		return nil, s.mapErr(userID, err)
	}
	return saved, nil
}

func (s *Service) DeleteExercise(ctx context.Context, userID string, id int) error {
	return s.mapErr(userID, s.repo.DeleteExercise(ctx, userID, id))
}

func (s *Service) mapErr(userID string, err error) error {
	if err == nil {
		return nil
	}

	var capErr *CapReachedError
	if errors.As(err, &capErr) {
		log.Debugf("user %s: %s", userID, capErr)
		if s.metricsManager != nil {
			s.metricsManager.CounterAdmissionRejections.With(prometheus.Labels{"limit": "saved_" + capErr.Kind}).Inc()
		}
		return apierr.AdmissionLimit(
			fmt.Sprintf("Limit of %d saved %s reached", capErr.Limit, capErr.Kind),
			http.StatusForbidden,
		)
	}

	switch {
	case errors.Is(err, ErrTitleTaken):
		return apierr.Conflict("A saved workout with this title already exists", err)
	case errors.Is(err, ErrSavedWorkoutNotFound):
		return apierr.NotFound("Saved workout not found", err)
	case errors.Is(err, ErrSavedExerciseNotFound):
		return apierr.NotFound("Saved exercise not found", err)
	default:
		return err
	}
}
