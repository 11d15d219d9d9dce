package favorites

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth/authctx"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=favorites_test

type favoritesService interface {
	ListWorkouts(ctx context.Context, userID string) ([]SavedWorkout, error)
	SaveWorkout(ctx context.Context, userID string, in validation.SavedWorkoutInput) (*SavedWorkout, error)
	DeleteWorkout(ctx context.Context, userID, title string) error
	ListExercises(ctx context.Context, userID string) ([]SavedExercise, error)
	SaveExercise(ctx context.Context, userID string, in validation.SavedExerciseInput) (*SavedExercise, error)
	DeleteExercise(ctx context.Context, userID string, id int) error
}

type DeleteResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service   favoritesService
	validator *validation.Validator
}

func NewHandler(service favoritesService, validator *validation.Validator) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (handler *Handler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.list-workouts")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	saved, err := handler.service.ListWorkouts(ctx, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusOK)
}

func (handler *Handler) HandleSaveWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.save-workout")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	var in validation.SavedWorkoutInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	saved, err := handler.service.SaveWorkout(ctx, userID, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusCreated)
}

func (handler *Handler) HandleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.delete-workout")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	title, err := url.PathUnescape(mux.Vars(r)["title"])
	if err != nil {
		apierr.Write(w, apierr.Validation("Invalid title", map[string]any{"title": "must be a valid path segment"}))
		return
	}
	title = strings.TrimSpace(title)
	if title == "" {
		apierr.Write(w, apierr.Validation("Invalid title", map[string]any{"title": "is required"}))
		return
	}

	if err := handler.service.DeleteWorkout(ctx, userID, title); err != nil {
		apierr.Write(w, err)
		return
	}
	pkg.WriteJSON(w, DeleteResponse{Message: "Saved workout deleted"}, http.StatusOK)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.list-exercises")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	saved, err := handler.service.ListExercises(ctx, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusOK)
}

func (handler *Handler) HandleSaveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.save-exercise")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	var in validation.SavedExerciseInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	saved, err := handler.service.SaveExercise(ctx, userID, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusCreated)
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.delete-exercise")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		apierr.Write(w, apierr.Validation("Invalid id", map[string]any{"id": "must be a positive integer"}))
		return
	}

	if err := handler.service.DeleteExercise(ctx, userID, id); err != nil {
		apierr.Write(w, err)
		return
	}
	pkg.WriteJSON(w, DeleteResponse{Message: "Saved exercise deleted"}, http.StatusOK)
}
