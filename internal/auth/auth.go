// internal/auth/auth.go
//
// Optional bearer-token guard for the solver API.
// Responsibilities:
//   - Exchange the admin password (bcrypt hash from config) for an HS256 JWT.
//   - Verify bearer tokens and reject requests without a valid one.
//
// Notes:
//   - With no JWT secret configured the guard is disabled and every request passes.
//   - Tokens carry the subject in "sub" and expire after the configured TTL.

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDisabled     = errors.New("auth: disabled")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Authenticator signs and verifies API tokens.
type Authenticator struct {
	secret       []byte
	passwordHash []byte
	ttl          time.Duration
}

// New builds an Authenticator. An empty secret disables authentication.
func New(secret, passwordHash string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &Authenticator{secret: []byte(secret), passwordHash: []byte(passwordHash), ttl: ttl}
}

// Enabled reports whether tokens are required.
func (a *Authenticator) Enabled() bool { return len(a.secret) > 0 }

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword is a bcrypt verifier against the configured admin hash.
func (a *Authenticator) CheckPassword(pw string) bool {
	if len(a.passwordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(pw)) == nil
}

// Sign issues a token for subject.
func (a *Authenticator) Sign(subject string) (string, time.Time, error) {
	if !a.Enabled() {
		return "", time.Time{}, ErrDisabled
	}
	now := time.Now()
	exp := now.Add(a.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(a.secret)
	return ss, exp, err
}

// Verify checks a token and returns its subject.
func (a *Authenticator) Verify(token string) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

type ctxSubjectKey struct{}

// Subject returns the authenticated subject stored by Require, if any.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(ctxSubjectKey{}).(string)
	return s
}

// Require enforces a valid bearer token when authentication is enabled.
func (a *Authenticator) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			tok := bearer(r)
			if tok == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			sub, err := a.Verify(tok)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSubjectKey{}, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearer extracts a token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
