// Package authctx carries the authenticated caller through request contexts.
package authctx

import (
	"context"
	"time"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	tokenIDKey contextKey = "tokenID"
	expiryKey  contextKey = "tokenExpiry"
)

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func WithTokenID(ctx context.Context, tokenID string) context.Context {
	return context.WithValue(ctx, tokenIDKey, tokenID)
}

func TokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(tokenIDKey).(string)
	return tokenID, ok && tokenID != ""
}

// WithTokenExpiry stores when the presented token expires, so it can be revoked
// for exactly as long as it would stay valid.
func WithTokenExpiry(ctx context.Context, expiresAt time.Time) context.Context {
	return context.WithValue(ctx, expiryKey, expiresAt)
}

func TokenExpiryFromContext(ctx context.Context) (time.Time, bool) {
	expiresAt, ok := ctx.Value(expiryKey).(time.Time)
	return expiresAt, ok && !expiresAt.IsZero()
}
