package weights

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth/authctx"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=weights_test

type weightsService interface {
	List(ctx context.Context, userID string) ([]Weight, error)
	Create(ctx context.Context, userID string, in validation.WeightInput) (*Weight, error)
	Update(ctx context.Context, userID string, id int, in validation.WeightUpdateInput) (*Weight, error)
	Delete(ctx context.Context, userID string, id int) error
}

type DeleteResponse struct {
	Message   string `json:"message"`
	DeletedID int    `json:"deletedId"`
}

type Handler struct {
	service   weightsService
	validator *validation.Validator
}

func NewHandler(service weightsService, validator *validation.Validator) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.list")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	weights, err := handler.service.List(ctx, userID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	pkg.WriteJSON(w, weights, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.create")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	var in validation.WeightInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	created, err := handler.service.Create(ctx, userID, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	log.Debugf("user %s: new weight %d", userID, created.ID)
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.update")
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

	var in validation.WeightUpdateInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	updated, err := handler.service.Update(ctx, userID, id, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.delete")
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

	pkg.WriteJSON(w, DeleteResponse{Message: "Weight deleted", DeletedID: id}, http.StatusOK)
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, apierr.Validation("Invalid id", map[string]any{"id": "must be a positive integer"})
	}
	return id, nil
}
