package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/billing"
	"github.com/yassine/cvbuilder/internal/db"
	"github.com/yassine/cvbuilder/internal/importer"
	"github.com/yassine/cvbuilder/internal/resume"
	"github.com/yassine/cvbuilder/internal/templates"
	"github.com/yassine/cvbuilder/internal/wizard"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrResumeNotFound indicates a resume id that does not exist or is not
// owned by the requesting user. The two cases are deliberately not
// distinguishable from the outside.
type ErrResumeNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists     *ErrEmailAlreadyExists
		invalidCreds    *ErrInvalidCredentials
		userNotFound    *ErrUserNotFound
		passwordWrong   *ErrPasswordMismatch
		validation      *ErrValidation
		resumeNotFound  *ErrResumeNotFound
		stepValidation  *wizard.ValidationError
		premiumRequired *wizard.PremiumRequiredError
		unknownStep     *wizard.UnknownStepError
		notFinal        *wizard.NotAtFinalStepError
		sessionMissing  *wizard.SessionNotFoundError
		tmplNotFound    *templates.NotFoundError
		schemaInvalid   *resume.SchemaError
		badFileType     *importer.UnsupportedFileTypeError
		fileTooLarge    *importer.FileTooLargeError
		unknownPlan     *billing.UnknownPlanError
		stripeErr       *billing.APIError
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds), errors.As(err, &passwordWrong):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &resumeNotFound),
		errors.As(err, &sessionMissing), errors.As(err, &tmplNotFound):
		return http.StatusNotFound
	case errors.As(err, &premiumRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, db.ErrQuotaExhausted):
		return http.StatusPaymentRequired
	case errors.As(err, &validation), errors.As(err, &stepValidation),
		errors.As(err, &unknownStep), errors.As(err, &notFinal),
		errors.As(err, &schemaInvalid), errors.As(err, &badFileType),
		errors.As(err, &unknownPlan):
		return http.StatusBadRequest
	case errors.As(err, &fileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &stripeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
