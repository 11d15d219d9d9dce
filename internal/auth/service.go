package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/internal/users"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=auth_test

type usersRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
}

type tokenRevoker interface {
	Revoke(ctx context.Context, tokenID, userID string, ttl time.Duration) error
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	User      *users.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type Service struct {
	repo    usersRepo
	tokens  *TokenManager
	revoker tokenRevoker
	now     func() time.Time
	// injectable for tests, bcrypt at production cost is slow
	HashPasswordFunc func(password string) (string, error)
}

func NewService(repo usersRepo, tokens *TokenManager, revoker tokenRevoker) *Service {
	return &Service{
		repo:             repo,
		tokens:           tokens,
		revoker:          revoker,
		now:              time.Now,
		HashPasswordFunc: pkg.HashPassword,
	}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	passwordHash, err := s.HashPasswordFunc(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apierr.Validation("Validation failed", map[string]any{"password": "must be at most 72 bytes"})
	}
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, in.Name, in.Email, passwordHash)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, apierr.Conflict("Email already registered", err)
		}
		return nil, err
	}

	log.Infof("new user signed up: %s", user.ID)
	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, apierr.Auth("Invalid email or password")
		}
		return nil, err
	}

	if !pkg.CheckPasswordHash(in.Password, user.PasswordHash) {
		log.Debugf("login: wrong password for user %s", user.ID)
		return nil, apierr.Auth("Invalid email or password")
	}

	return s.issue(user)
}

// Logout revokes the given token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, rawToken string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apierr.TokenExpired()
		}
		return apierr.Auth("Invalid token")
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.revoker.Revoke(ctx, claims.ID, claims.UserID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	log.Debugf("user %s logged out", claims.UserID)
	return nil
}

func (s *Service) issue(user *users.User) (*Response, error) {
	token, claims, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &Response{
		User:      user,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
