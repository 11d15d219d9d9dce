package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/auth/authctx"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type tokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

type revocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddlewareHandler struct {
	tokens               tokenParser
	revocations          revocationChecker
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(
	tokens tokenParser,
	revocations revocationChecker,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		tokens:      tokens,
		revocations: revocations,
		allowedPaths: map[string]bool{
			"/health":      true,
			"/auth/signup": true,
			"/auth/login":  true,
		},
		allowedPathsPrefixes: []string{},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions || h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token, ok := auth.TokenFromRequest(r)
			if !ok {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				apierr.Write(w, apierr.Auth("Missing authorization token"))
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			claims, err := h.tokens.Parse(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					log.Tracef("[expired token] [auth middleware] unauthorized => %s", r.URL.Path)
					apierr.Write(w, apierr.TokenExpired())
					span.SetStatus(codes.Error, "token-expired")
					return
				}
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
				apierr.Write(w, apierr.Auth("Invalid token"))
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			revoked, err := h.revocations.IsRevoked(ctx, claims.ID)
			if err != nil {
				log.Errorf("[failed revocation check] => %s: %s", r.URL.Path, err)
				apierr.Write(w, apierr.Auth("Unable to verify token"))
				span.SetStatus(codes.Error, "revocation-check-err")
				span.RecordError(err)
				return
			}
			if revoked {
				log.Tracef("[revoked token] [auth middleware] unauthorized => %s", r.URL.Path)
				apierr.Write(w, apierr.Auth("Token has been revoked"))
				span.SetStatus(codes.Error, "token-revoked")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			ctx = authctx.WithUserID(ctx, claims.UserID)
			ctx = authctx.WithTokenID(ctx, claims.ID)
			ctx = authctx.WithTokenExpiry(ctx, claims.ExpiresAt.Time)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
