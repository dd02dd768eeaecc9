package supabase

import (
	"context"

	"appprove-backend/pkg/auth"
	appErrors "appprove-backend/pkg/errors"

	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

// IdentityVerifier resolves a bearer token to its user through the
// Supabase auth API. The middleware uses it as a fallback when local
// JWT validation is unavailable.
type IdentityVerifier struct {
	client *supabase.Client
	logger *zap.Logger
}

// NewIdentityVerifier creates a Supabase-backed identity verifier.
func NewIdentityVerifier(client *supabase.Client, logger *zap.Logger) *IdentityVerifier {
	return &IdentityVerifier{client: client, logger: logger}
}

// Verify checks the token against Supabase auth and returns the user it
// belongs to.
func (v *IdentityVerifier) Verify(ctx context.Context, token string) (*auth.UserContext, error) {
	// GetUser carries the context inside the underlying HTTP request.
	user, err := v.client.Auth.WithToken(token).GetUser()
	if err != nil {
		v.logger.Debug("Token rejected by auth API", zap.Error(err))
		return nil, appErrors.NewAuthRequiredError("invalid or expired token")
	}

	uc := &auth.UserContext{
		ID:    user.ID.String(),
		Email: user.Email,
	}
	if name, ok := user.UserMetadata["user_name"].(string); ok {
		uc.Username = name
	}
	if name, ok := user.UserMetadata["full_name"].(string); ok {
		uc.FullName = name
	}
	return uc, nil
}
