package reject

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	genericUnexpectedError string = "error.generic.unexpected"
	cannotParseParams      string = "error.generic.cannot-parse-params"
	cannotParseBody        string = "error.generic.cannot-parse-payload"
)

func RequestParamsProblem() Problem {
	return NewProblem().
		WithTitle("Invalid request parameters").
		WithStatus(http.StatusBadRequest).
		WithCode(cannotParseParams).
		Build()
}

func BodyParseProblem() Problem {
	return NewProblem().
		WithTitle("Cannot read payload").
		WithStatus(http.StatusBadRequest).
		WithCode(cannotParseBody).
		Build()
}

func ValidationProblem(title string, code string) Problem {
	return NewProblem().
		WithTitle(title).
		WithStatus(http.StatusBadRequest).
		WithCode(code).
		Build()
}

func ConflictProblem(title string, code string) Problem {
	return NewProblem().
		WithTitle(title).
		WithStatus(http.StatusConflict).
		WithCode(code).
		Build()
}

func MissingResourceProblem(title string, code string) Problem {
	return NewProblem().
		WithTitle(title).
		WithStatus(http.StatusNotFound).
		WithCode(code).
		Build()
}

func UnauthorizedProblem(title string, code string, detail string) Problem {
	return NewProblem().
		WithTitle(title).
		WithStatus(http.StatusUnauthorized).
		WithCode(code).
		WithDetail(detail).
		Build()
}

func UnexpectedProblem(err error) Problem {
	log.Warn().Err(err).Msg("Unexpected error while handling request: " + err.Error())
	return NewProblem().
		WithTitle("Unexpected error").
		WithStatus(http.StatusInternalServerError).
		WithCode(genericUnexpectedError).
		Build()
}
