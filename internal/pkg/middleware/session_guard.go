package middleware

import (
	"errors"
	"net/http"

	"github.com/forgeworks/itemforge-backend/internal/pkg/model"
	"github.com/forgeworks/itemforge-backend/internal/pkg/reject"
	"github.com/forgeworks/itemforge-backend/internal/pkg/session"
	"github.com/forgeworks/itemforge-backend/internal/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	sessionRequired       string = "error.session.required"
	sessionWrongScheme    string = "error.session.wrong-scheme"
	sessionExpired        string = "error.session.expired"
	sessionInvalid        string = "error.session.invalid"
	sessionUnknownAccount string = "error.session.unknown-account"
)

// RequireSession gates protected routes behind a valid session cookie.
// It is the single chokepoint for authorization: it verifies the
// transport value, resolves the embedded account against the store and
// attaches it to the request context. Every failure clears the cookie
// (logical logout) before the 401 goes out.
func RequireSession(db *gorm.DB, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieValue, _ := c.Cookie(session.CookieName)

		userId, failure := session.VerifyTransport(cookieValue, jwtSecret)
		if failure != nil {
			rejectSession(c, failure)
			return
		}

		var user model.GameUser
		result := db.First(&user, userId)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				rejectSession(c, &session.Failure{Kind: session.KindUnknownAccount})
				return
			}
			clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusInternalServerError, reject.UnexpectedProblem(result.Error))
			return
		}

		utils.SetCurrentUser(&user, c)
	}
}

func rejectSession(c *gin.Context, failure *session.Failure) {
	log.Warn().
		Err(failure.Cause).
		Int("kind", int(failure.Kind)).
		Msg("Session rejected: 401")

	clearSessionCookie(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, sessionProblem(failure))
}

func sessionProblem(failure *session.Failure) reject.Problem {
	switch failure.Kind {
	case session.KindExpired:
		return reject.UnauthorizedProblem("session expired", sessionExpired, "")
	case session.KindMalformed:
		return reject.UnauthorizedProblem("invalid session", sessionInvalid, "")
	default:
		detail := ""
		if failure.Cause != nil {
			detail = failure.Cause.Error()
		}
		return reject.UnauthorizedProblem("unauthorized request", genericSessionCode(failure.Kind), detail)
	}
}

func genericSessionCode(kind session.FailureKind) string {
	switch kind {
	case session.KindMissing:
		return sessionRequired
	case session.KindWrongScheme:
		return sessionWrongScheme
	case session.KindUnknownAccount:
		return sessionUnknownAccount
	default:
		return sessionInvalid
	}
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
