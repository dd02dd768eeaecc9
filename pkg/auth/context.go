package auth

import (
	"context"

	apperrors "appprove-backend/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// UserContext is the signed-in identity attached to a request.
type UserContext struct {
	ID       string
	Email    string
	Username string
	FullName string
}

// WithUser attaches a user context to the request context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the signed-in user, or an auth-required
// error when the request carries no identity.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil || user.ID == "" {
		return nil, apperrors.NewAuthRequiredError("")
	}
	return user, nil
}
