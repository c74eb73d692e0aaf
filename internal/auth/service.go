package auth

import (
	"errors"
	"regexp"

	"github.com/forgeworks/itemforge-backend/internal/pkg/model"
	"github.com/forgeworks/itemforge-backend/internal/pkg/reject"
	"github.com/forgeworks/itemforge-backend/internal/pkg/session"
	"github.com/forgeworks/itemforge-backend/internal/pkg/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	invalidLoginId   string = "error.sign-up.invalid-id"
	weakPassword     string = "error.sign-up.weak-password"
	passwordMismatch string = "error.sign-up.password-mismatch"
	duplicateLoginId string = "error.sign-up.duplicate-id"
	unknownLoginId   string = "error.sign-in.unknown-id"
	wrongPassword    string = "error.sign-in.wrong-password"
)

const minPasswordLength = 6

var loginIdPattern = regexp.MustCompile(`^[a-z0-9]+$`)

type authService struct {
	db        *gorm.DB
	jwtSecret []byte
}

// signUp validates the candidate identity and creates the account row
// together with its profile in one transaction. No session is issued
// here; sign-in is a separate step.
func (s *authService) signUp(body SignUpRequest) *reject.ProblemWithTrace {
	if !loginIdPattern.MatchString(body.Id) {
		return &reject.ProblemWithTrace{
			Problem: reject.ValidationProblem("Login id must contain only lowercase letters and digits", invalidLoginId),
		}
	}
	if len(body.Password) < minPasswordLength {
		return &reject.ProblemWithTrace{
			Problem: reject.ValidationProblem("Password must be at least 6 characters long", weakPassword),
		}
	}
	if body.Password != body.PasswordCheck {
		return &reject.ProblemWithTrace{
			Problem: reject.ValidationProblem("Password confirmation does not match", passwordMismatch),
		}
	}

	var existing model.GameUser
	result := s.db.Where("login_id = ?", body.Id).First(&existing)
	if result.Error == nil {
		return &reject.ProblemWithTrace{
			Problem: reject.ConflictProblem("Login id already registered", duplicateLoginId),
		}
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := model.GameUser{
			LoginId:      body.Id,
			PasswordHash: string(hash),
		}
		if result := tx.Create(&user); result.Error != nil {
			return result.Error
		}

		profile := model.UserProfile{
			UserId: user.Id,
			Name:   body.Name,
		}
		if result := tx.Create(&profile); result.Error != nil {
			return result.Error
		}

		return nil
	})

	if err != nil {
		// the pre-check above is advisory; a racing registration loses
		// here on the unique index instead
		if store.IsUniqueViolation(err) {
			return &reject.ProblemWithTrace{
				Problem: reject.ConflictProblem("Login id already registered", duplicateLoginId),
				Cause:   err,
			}
		}
		return &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	return nil
}

// signIn compares the credential against the stored hash and mints a
// session token on match.
func (s *authService) signIn(body SignInRequest) (string, *reject.ProblemWithTrace) {
	var user model.GameUser
	result := s.db.Where("login_id = ?", body.Id).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", &reject.ProblemWithTrace{
			Problem: reject.MissingResourceProblem("Account does not exist", unknownLoginId),
		}
	}
	if result.Error != nil {
		return "", &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(result.Error), Cause: result.Error}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return "", &reject.ProblemWithTrace{
			Problem: reject.UnauthorizedProblem("Wrong password", wrongPassword, ""),
		}
	}

	token, err := session.Issue(user.Id, s.jwtSecret)
	if err != nil {
		return "", &reject.ProblemWithTrace{Problem: reject.UnexpectedProblem(err), Cause: err}
	}

	return token, nil
}
