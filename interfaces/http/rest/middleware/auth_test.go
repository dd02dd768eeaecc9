package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appprove-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthenticator(t *testing.T, secret string) *Authenticator {
	t.Helper()
	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: secret})
	require.NoError(t, err)
	return NewAuthenticator(validator, nil, zap.NewNop())
}

func signTestToken(t *testing.T, secret, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRequirePassesValidTokenThrough(t *testing.T) {
	authenticator := newTestAuthenticator(t, "secret")

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		require.NoError(t, err)
		seenUserID = user.ID
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", "user-42"))
	rec := httptest.NewRecorder()

	authenticator.Require(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", seenUserID)
}

func TestRequireRejectsMissingHeader(t *testing.T) {
	authenticator := newTestAuthenticator(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts", nil)
	rec := httptest.NewRecorder()

	called := false
	authenticator.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireRejectsBadToken(t *testing.T) {
	authenticator := newTestAuthenticator(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "wrong-secret", "user-42"))
	rec := httptest.NewRecorder()

	authenticator.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
