package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/auth"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

// ErrForbidden is returned when an authenticated caller lacks the admin role.
var ErrForbidden = errors.New("forbidden")

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case domain.IsValidationError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, catalog.ErrUnsupportedFormat),
		errors.Is(err, catalog.ErrMissingColumn),
		isRequestValidationError(err):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var vErr *domain.ValidationError
	var nfErr *domain.NotFoundError

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case MapErrorToStatusCode(err) == http.StatusUnauthorized:
		return "Invalid token"
	case errors.Is(err, ErrForbidden):
		return "Admin role required"

	case errors.Is(err, service.ErrNotInP0):
		return "Word has already been learned"
	case errors.Is(err, service.ErrNotRemedial):
		return "Word is not in a review pool"
	case errors.Is(err, service.ErrWrongPhase):
		return "Word is not in the expected review phase"
	case errors.Is(err, service.ErrEmptyBatch):
		return "No words provided"
	case errors.Is(err, service.ErrDuplicateWord):
		return "Word appears more than once"

	case errors.As(err, &vErr) && vErr.Field != "":
		return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, catalog.ErrUnsupportedFormat):
		return "Unsupported file format"
	case errors.Is(err, catalog.ErrMissingColumn):
		return "Missing required column"
	case isRequestValidationError(err):
		return SanitizeValidationError(err)
	case domain.IsValidationError(err), errors.Is(err, store.ErrInvalidEntity):
		return "Validation failed"

	case errors.As(err, &nfErr):
		return notFoundMessage(nfErr.Entity)
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, store.ErrProgressNotFound):
		return "Word progress not found"
	case errors.Is(err, store.ErrLevelNotFound):
		return "Level not found"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	default:
		return "An unexpected error occurred"
	}
}

func notFoundMessage(entity string) string {
	if entity == "" {
		return "Resource not found"
	}
	label := strings.ReplaceAll(entity, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:] + " not found"
}

func isRequestValidationError(err error) bool {
	var vErrs validator.ValidationErrors
	return errors.As(err, &vErrs)
}

// SanitizeValidationError turns validator output into a message naming the
// first failing field.
func SanitizeValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		fe := vErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "uuid", "uuid4":
		return "must be a UUID"
	case "oneof":
		return "invalid value"
	case "gte", "gt":
		return "too small"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. For 5xx
// responses defaultMsg, when set, replaces the generic message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// HandleValidationError writes a 400 for a rejected request body.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var message string
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr) && vErr.Field != "":
		message = fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	case errors.Is(err, shared.ErrEmptyBody):
		message = "Request body is required"
	case isRequestValidationError(err):
		message = SanitizeValidationError(err)
	default:
		message = "Invalid request format"
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}
