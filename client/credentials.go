package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/trezcool/darasa/core/fetch"
)

// TokenSource supplies the access token attached to outgoing requests.
// Returning an error aborts the request before it hits the wire.
type TokenSource interface {
	Token() (string, error)
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (src StaticTokenSource) Token() (string, error) { return string(src), nil }

// JWTTokenSource holds a JWT access token and refuses to hand out one that is
// missing or expired, so a doomed request fails fast as unauthorized instead
// of round-tripping to the server. The token signature is not verified here;
// that is the server's job.
type JWTTokenSource struct {
	mu     sync.RWMutex
	token  string
	leeway time.Duration
}

var _ TokenSource = (*JWTTokenSource)(nil)

func NewJWTTokenSource(token string, leeway time.Duration) *JWTTokenSource {
	return &JWTTokenSource{token: token, leeway: leeway}
}

// SetToken swaps in a fresh token, typically from an OnUnauthorized handler.
func (src *JWTTokenSource) SetToken(token string) {
	src.mu.Lock()
	defer src.mu.Unlock()
	src.token = token
}

func (src *JWTTokenSource) Token() (string, error) {
	src.mu.RLock()
	defer src.mu.RUnlock()

	if src.token == "" {
		return "", fetch.Unauthorized("no access token")
	}

	claims := new(jwt.StandardClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(src.token, claims); err != nil {
		return "", fetch.Unauthorized(fmt.Sprintf("malformed access token: %v", err))
	}
	if claims.ExpiresAt > 0 {
		exp := time.Unix(claims.ExpiresAt, 0)
		if !time.Now().Add(src.leeway).Before(exp) {
			return "", fetch.Unauthorized("access token expired")
		}
	}
	return src.token, nil
}
