package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth/authctx"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, patch Patch) (*User, error)
	Delete(ctx context.Context, id string) error
}

type tokenRevoker interface {
	Revoke(ctx context.Context, tokenID, userID string, ttl time.Duration) error
}

type DeleteUserResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo      usersRepo
	revoker   tokenRevoker
	validator *validation.Validator
	onDelete  func(userID string)
}

// NewHandler creates the /users/me handler. Deleting the account revokes the
// token used for the request. onDelete, if set, is invoked after a user is
// removed (e.g. to drop cached data).
func NewHandler(repo usersRepo, revoker tokenRevoker, validator *validation.Validator, onDelete func(userID string)) *Handler {
	return &Handler{
		repo:      repo,
		revoker:   revoker,
		validator: validator,
		onDelete:  onDelete,
	}
}

func (handler *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get-me")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if err != nil {
		apierr.Write(w, mapRepoErr(err))
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (handler *Handler) HandlePatchMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.patch-me")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	var patch Patch
	if err := handler.validator.DecodeJSON(r.Body, &patch); err != nil {
		apierr.Write(w, err)
		return
	}
	if patch.IsEmpty() {
		apierr.Write(w, apierr.Validation("Nothing to update", nil))
		return
	}

	user, err := handler.repo.Update(ctx, userID, patch)
	if err != nil {
		apierr.Write(w, mapRepoErr(err))
		return
	}

	log.Debugf("user %s updated", userID)
	pkg.WriteJSON(w, user, http.StatusOK)
}

func (handler *Handler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.delete-me")
	defer span.End()

	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		apierr.Write(w, apierr.Auth("Unauthorized"))
		return
	}

	if err := handler.repo.Delete(ctx, userID); err != nil {
		apierr.Write(w, mapRepoErr(err))
		return
	}

	if handler.onDelete != nil {
		handler.onDelete(userID)
	}
	handler.revokeRequestToken(ctx, userID)

	log.Infof("user %s deleted", userID)
	pkg.WriteJSON(w, DeleteUserResponse{DeletedID: userID}, http.StatusOK)
}

// revokeRequestToken is best effort: the account is already gone, so a redis
// failure is logged and the delete still succeeds.
func (handler *Handler) revokeRequestToken(ctx context.Context, userID string) {
	tokenID, ok := authctx.TokenIDFromContext(ctx)
	if !ok || handler.revoker == nil {
		return
	}
	expiresAt, ok := authctx.TokenExpiryFromContext(ctx)
	if !ok {
		log.Warnf("user %s deleted: token %s has no expiry in context, not revoked", userID, tokenID)
		return
	}
	if err := handler.revoker.Revoke(ctx, tokenID, userID, time.Until(expiresAt)); err != nil {
		log.Errorf("user %s deleted: revoke token %s: %s", userID, tokenID, err)
	}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return apierr.NotFound("User not found", err)
	case errors.Is(err, ErrEmailTaken):
		return apierr.Conflict("Email already registered", err)
	default:
		return err
	}
}
