package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds what the validator needs to check Supabase access
// tokens locally. Supabase signs with HS256 using the project's JWT
// secret.
type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
}

// JWTValidator validates bearer tokens without a network round-trip.
type JWTValidator struct {
	config JWTConfig
}

// NewJWTValidator creates a validator for the given configuration.
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	return &JWTValidator{config: config}, nil
}

// Validate parses and verifies a token and extracts the user identity
// from its claims.
func (v *JWTValidator) Validate(tokenString string) (*UserContext, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.config.SecretKey), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.New("token has no subject")
	}

	user := &UserContext{ID: sub}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	// Supabase stores the OAuth profile under user_metadata.
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if username, ok := meta["user_name"].(string); ok {
			user.Username = username
		}
		if fullName, ok := meta["full_name"].(string); ok {
			user.FullName = fullName
		}
	}
	return user, nil
}
