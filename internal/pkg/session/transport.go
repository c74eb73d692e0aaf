package session

import (
	"errors"
	"strings"
)

type FailureKind int

const (
	KindMissing FailureKind = iota
	KindWrongScheme
	KindExpired
	KindMalformed
	KindUnknownAccount
)

// Failure describes why a session was rejected. Any non-nil Failure
// obliges the caller to clear the session transport before responding;
// the verification functions themselves never touch the response.
type Failure struct {
	Kind  FailureKind
	Cause error
}

// VerifyTransport checks a raw transport value ("Bearer <token>") and
// resolves it to an account id. It is a pure function: cookie handling
// is left entirely to the caller.
func VerifyTransport(value string, secret []byte) (uint64, *Failure) {
	if value == "" {
		return 0, &Failure{Kind: KindMissing}
	}

	scheme, token, found := strings.Cut(value, " ")
	if !found || scheme != Scheme {
		return 0, &Failure{Kind: KindWrongScheme}
	}

	userId, err := Verify(token, secret)
	if err != nil {
		kind := KindMalformed
		if errors.Is(err, ErrExpired) {
			kind = KindExpired
		}
		return 0, &Failure{Kind: kind, Cause: err}
	}

	return userId, nil
}
