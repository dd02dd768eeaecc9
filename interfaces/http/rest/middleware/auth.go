package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"appprove-backend/pkg/auth"
	"appprove-backend/pkg/common"

	"go.uber.org/zap"
)

// IdentityVerifier resolves a bearer token over the network when local
// validation is not possible.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*auth.UserContext, error)
}

// Authenticator validates bearer tokens and attaches the user identity
// to the request context. Tokens are checked locally against the
// project's JWT secret; when no secret is configured it falls back to
// the auth API.
type Authenticator struct {
	validator   *auth.JWTValidator
	verifier    IdentityVerifier
	ipLimiter   *auth.TokenBucketLimiter
	userLimiter *auth.TokenBucketLimiter
	logger      *zap.Logger
}

// NewAuthenticator creates the authentication middleware. validator may
// be nil, in which case every token goes through the remote verifier.
func NewAuthenticator(validator *auth.JWTValidator, verifier IdentityVerifier, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		validator:   validator,
		verifier:    verifier,
		ipLimiter:   auth.NewIPRateLimiter(100),
		userLimiter: auth.NewUserRateLimiter(200),
		logger:      logger,
	}
}

// Require rejects requests without a valid signed-in identity.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, _ := a.ipLimiter.Allow(r.Context(), clientIP(r))
		if !allowed {
			common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded")
			return
		}

		token := extractToken(r)
		if token == "" {
			common.RespondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Missing authorization header")
			return
		}

		user, err := a.resolve(r.Context(), token)
		if err != nil {
			a.logger.Warn("Token rejected",
				zap.Error(err),
				zap.String("path", r.URL.Path),
			)
			common.RespondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Invalid or expired token")
			return
		}

		allowed, _ = a.userLimiter.Allow(r.Context(), user.ID)
		if !allowed {
			common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "User rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

func (a *Authenticator) resolve(ctx context.Context, token string) (*auth.UserContext, error) {
	if a.validator != nil {
		user, err := a.validator.Validate(token)
		if err == nil {
			return user, nil
		}
		if a.verifier == nil {
			return nil, err
		}
	}
	if a.verifier == nil {
		return nil, errors.New("no token validator configured")
	}
	return a.verifier.Verify(ctx, token)
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
