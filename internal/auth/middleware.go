// Package auth extracts the account identity from bearer tokens. The rest
// of the service only ever sees the opaque account ID this package puts in
// the request context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deckfall/run-api/internal/errors"
)

type contextKey struct{}

// AccountIDFromContext returns the authenticated account ID, if any.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// WithAccountID returns a context carrying the account ID. Exposed for
// tests and internal tooling that bypass the HTTP middleware.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, contextKey{}, accountID)
}

// Middleware validates bearer tokens and injects the account ID.
type Middleware struct {
	secret []byte
}

// Config holds the dependencies for the auth middleware
type Config struct {
	// Secret is the HMAC key shared with the identity provider.
	Secret []byte
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.Secret) == 0 {
		vb.RequiredField("Secret")
	}

	return vb.Build()
}

// NewMiddleware creates a new auth middleware with the provided dependencies
func NewMiddleware(cfg *Config) (*Middleware, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Middleware{secret: cfg.Secret}, nil
}

// Wrap authenticates the request and forwards it with the account ID in
// context, or rejects it with 401.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, err := m.accountIDFromRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"UNAUTHENTICATED","error":"` + errors.GetMessage(err) + `"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), accountID)))
	})
}

// IssueToken signs a token for the account. Used by tests and local
// tooling; production tokens come from the identity provider.
func (m *Middleware) IssueToken(accountID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": accountID})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func (m *Middleware) accountIDFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.Unauthenticated("missing authorization header")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", errors.Unauthenticated("authorization header is not a bearer token")
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", errors.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.Unauthenticated("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.Unauthenticated("token has no subject")
	}
	return sub, nil
}
