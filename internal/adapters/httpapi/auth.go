package httpapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"evenza/internal/domain/entities"
)

var errInvalidToken = errors.New("invalid token")

// Claims is the access token payload: sub is the user id.
type Claims struct {
	Email string        `json:"email,omitempty"`
	Role  entities.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 access tokens issued with a shared secret.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses raw and returns the user it identifies.
func (v *TokenVerifier) Verify(raw string) (entities.User, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return entities.User{}, fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if claims.Subject == "" {
		return entities.User{}, fmt.Errorf("%w: missing subject", errInvalidToken)
	}
	if claims.Role != entities.RoleAdmin && claims.Role != entities.RoleParticipant {
		return entities.User{}, fmt.Errorf("%w: unknown role %q", errInvalidToken, claims.Role)
	}
	return entities.User{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

// IssueToken signs a token for u valid for ttl. Tokens normally come from
// the identity provider; this serves local tooling and tests.
func IssueToken(secret string, u entities.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
