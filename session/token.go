package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the stored bearer token carries an exp claim
// in the past. The signature is deliberately not verified: this is a local
// staleness hint so a shell can route to login before burning a request. The
// server remains the authority on token validity.
func TokenExpired(s Store) bool {
	tok, ok := s.Token()
	if !ok {
		return true
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		// Opaque (non-JWT) tokens are assumed live.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
