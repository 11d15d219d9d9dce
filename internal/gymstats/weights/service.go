package weights

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=weights_test

type weightsRepo interface {
	List(ctx context.Context, userID string) ([]Weight, error)
	ExistsOnDate(ctx context.Context, userID string, date time.Time) (bool, error)
	Create(ctx context.Context, userID string, value float64, date time.Time) (*Weight, error)
	Update(ctx context.Context, userID string, id int, value float64) (*Weight, error)
	Delete(ctx context.Context, userID string, id int) error
}

const sameDayConflictMsg = "Weight entry for this date already exists"

type Service struct {
	repo           weightsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo weightsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]Weight, error) {
	return s.repo.List(ctx, userID)
}

// Create logs a weight for the given date (today when absent).
// The existence check gives a friendly conflict, the unique constraint closes the race.
func (s *Service) Create(ctx context.Context, userID string, in validation.WeightInput) (*Weight, error) {
	date := in.Date.Or(s.now())

	exists, err := s.repo.ExistsOnDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Tracef("user %s: weight on %s already logged", userID, date.Format(time.DateOnly))
		return nil, apierr.Conflict(sameDayConflictMsg, ErrWeightExists)
	}

	created, err := s.repo.Create(ctx, userID, in.Value, date)
	if err != nil {
		return nil, mapErr(err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWeightsLogged.Inc()
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, userID string, id int, in validation.WeightUpdateInput) (*Weight, error) {
	updated, err := s.repo.Update(ctx, userID, id, in.Value)
	if err != nil {
		return nil, mapErr(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int) error {
	return mapErr(s.repo.Delete(ctx, userID, id))
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrWeightNotFound):
		return apierr.NotFound("Weight not found", err)
	case errors.Is(err, ErrWeightExists):
		return apierr.Conflict(sameDayConflictMsg, err)
	default:
		return err
	}
}
