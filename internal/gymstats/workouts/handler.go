package workouts

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth/authctx"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	List(ctx context.Context, userID string) ([]Workout, error)
	Get(ctx context.Context, userID string, id int) (*Workout, error)
	Create(ctx context.Context, userID string, in validation.WorkoutInput) (*Workout, error)
	Update(ctx context.Context, userID string, id int, in validation.WorkoutInput) (*Workout, error)
	Delete(ctx context.Context, userID string, id int) error
	UpdateExercise(ctx context.Context, userID string, exerciseID int, in validation.ExerciseInput) (*Exercise, error)
	DeleteExercise(ctx context.Context, userID string, exerciseID int) error
}

type workoutsCache interface {
	Get(userID string) (data []byte, generation uint64, found bool)
	Set(userID string, generation uint64, data []byte)
	Invalidate(userID string)
}

type DeleteResponse struct {
	Message   string `json:"message"`
	DeletedID int    `json:"deletedId"`
}

type Handler struct {
	service   workoutsService
	cache     workoutsCache
	validator *validation.Validator
}

func NewHandler(service workoutsService, cache workoutsCache, validator *validation.Validator) *Handler {
	return &Handler{
		service:   service,
		cache:     cache,
		validator: validator,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	cached, generation, found := handler.cache.Get(userID)
	if found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	workouts, err := handler.service.List(ctx, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("failed to marshal workouts for user %s: %s", userID, err)
		apierr.Write(w, apierr.Internal(err))
		return
	}

	// dropped by the cache if a mutation invalidated it after the Get above
	handler.cache.Set(userID, generation, workoutsJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutsJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	workout, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	var in validation.WorkoutInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	created, err := handler.service.Create(ctx, userID, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	handler.cache.Invalidate(userID)

	log.Debugf("user %s: new workout %d with %d exercises", userID, created.ID, len(created.Exercises))
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var in validation.WorkoutInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	updated, err := handler.service.Update(ctx, userID, id, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	handler.cache.Invalidate(userID)

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if err := handler.service.Delete(ctx, userID, id); err != nil {
		apierr.Write(w, err)
		return
	}
	handler.cache.Invalidate(userID)

	pkg.WriteJSON(w, DeleteResponse{Message: "Workout deleted", DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update-exercise")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var in validation.ExerciseInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	updated, err := handler.service.UpdateExercise(ctx, userID, id, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	handler.cache.Invalidate(userID)

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete-exercise")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if err := handler.service.DeleteExercise(ctx, userID, id); err != nil {
		apierr.Write(w, err)
		return
	}
	handler.cache.Invalidate(userID)

	pkg.WriteJSON(w, DeleteResponse{Message: "Exercise deleted", DeletedID: id}, http.StatusOK)
}

func pathID(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, apierr.Validation("Invalid id", map[string]any{"id": "must be a positive integer"})
	}
	return id, nil
}
