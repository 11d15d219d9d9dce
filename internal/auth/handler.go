package auth

import (
	"context"
	"net/http"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type authService interface {
	Signup(ctx context.Context, in SignupInput) (*Response, error)
	Login(ctx context.Context, in LoginInput) (*Response, error)
	Logout(ctx context.Context, rawToken string) error
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service   authService
	validator *validation.Validator
}

func NewHandler(service authService, validator *validation.Validator) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (handler *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signup")
	defer span.End()

	var in SignupInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	resp, err := handler.service.Signup(ctx, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var in LoginInput
	if err := handler.validator.DecodeJSON(r.Body, &in); err != nil {
		apierr.Write(w, err)
		return
	}

	resp, err := handler.service.Login(ctx, in)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token, ok := TokenFromRequest(r)
	if !ok {
		apierr.Write(w, apierr.Auth("Missing authorization token"))
		return
	}

	if err := handler.service.Logout(ctx, token); err != nil {
		apierr.Write(w, err)
		return
	}

	pkg.WriteJSON(w, LogoutResponse{Message: "Logged out"}, http.StatusOK)
}
