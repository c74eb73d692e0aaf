package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Lifetime is the fixed validity window of a session token. There is no
// revocation list: a token stays valid until this window runs out or the
// transport cookie is cleared.
const Lifetime = time.Hour

const (
	// CookieName is the transport cookie carrying the session value.
	CookieName = "authorization"
	// Scheme is the expected prefix of the transport value.
	Scheme = "Bearer"
)

var (
	ErrExpired   = errors.New("session token expired")
	ErrMalformed = errors.New("session token malformed")
)

type sessionClaims struct {
	UserId uint64 `json:"userId"`
	jwt.RegisteredClaims
}

// Issue mints a signed token asserting "this bearer is account userId",
// valid for Lifetime from now.
func Issue(userId uint64, secret []byte) (string, error) {
	return issueAt(userId, secret, time.Now())
}

func issueAt(userId uint64, secret []byte, now time.Time) (string, error) {
	claims := sessionClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify checks signature and expiry and returns the embedded account id.
// Expiry and structural problems surface as distinct errors so callers
// can present different messages.
func Verify(raw string, secret []byte) (uint64, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrMalformed
	}
	if !token.Valid || claims.UserId == 0 {
		return 0, ErrMalformed
	}
	return claims.UserId, nil
}
