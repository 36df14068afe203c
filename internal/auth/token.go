// Package auth implements the token service: issuing and verifying the
// signed, time-limited bearer tokens that authenticate API requests. Tokens
// are stateless HS256 JWTs carrying the user id in the `sub` claim and an
// absolute expiry in `exp`; any process sharing the same signing secret can
// verify a token issued by another.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token validity applied when no explicit TTL is
// configured: ten minutes from issuance.
const DefaultTTL = 600 * time.Second

// Verification failures. Verify always returns one of these three so callers
// can log the precise cause, but the HTTP boundary collapses them into a
// single "Invalid token" response.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenSignature = errors.New("token signature is invalid")
)

// Issue builds and signs an HS256 JWT binding the given user id. The token
// expires ttl from now; a non-positive ttl falls back to DefaultTTL. Issue is
// stateless: nothing is persisted and the same secret verifies the result in
// any process.
func Issue(secret string, userID uint64, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the embedded user
// id. Failures are classified as ErrTokenMalformed, ErrTokenExpired or
// ErrTokenSignature. A successful result only proves the token is genuine and
// unexpired; the caller must still resolve the id to a live user record
// before trusting the identity.
func Verify(secret, token string) (uint64, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return 0, ErrTokenMalformed
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenMalformed
	}
	// JSON numbers decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub < 0 {
		return 0, ErrTokenMalformed
	}
	return uint64(sub), nil
}
