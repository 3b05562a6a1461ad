package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/egil10/nordnotat/internal/marketplace"
)

// JWTVerifier validates HS256 bearer tokens issued by the identity
// provider and resolves them to a user id (the sub claim).
// Implements marketplace.TokenVerifier.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for the shared signing secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the subject.
// Expiry and signature failures map to marketplace.ErrUnauthorized.
func (v *JWTVerifier) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", marketplace.ErrUnauthorized, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: token has no subject", marketplace.ErrUnauthorized)
	}
	return sub, nil
}
