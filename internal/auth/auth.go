// Package auth issues and verifies the bearer tokens that carry the
// authenticated principal. The principal id it produces is the owner id every
// store operation is scoped to.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// Principal identifies the authenticated user on a request.
type Principal struct {
	ID   int64
	Name string
}

// Authenticator signs and verifies HS256 tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

// New creates an Authenticator. ttl bounds token lifetime (default 1h).
func New(secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the user.
func (a *Authenticator) IssueToken(u *domain.User) (string, error) {
	now := time.Now()
	c := claims{
		Name: u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns its principal.
// Any parse, signature, or expiry failure maps to ErrUnauthenticated;
// callers never learn which check failed.
func (a *Authenticator) VerifyToken(token string) (Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, domain.ErrUnauthenticated
	}

	var id int64
	if _, err := fmt.Sscanf(c.Subject, "%d", &id); err != nil || id <= 0 {
		return Principal{}, domain.ErrUnauthenticated
	}
	return Principal{ID: id, Name: c.Name}, nil
}

// ─── Passwords ──────────────────────────────────────────────────────────────

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword compares a candidate against the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
