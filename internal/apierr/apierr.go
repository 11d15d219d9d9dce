package apierr

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/pkg"
)

type Kind string

const (
	KindValidation     Kind = "ValidationError"
	KindAdmissionLimit Kind = "AdmissionLimitError"
	KindNotFound       Kind = "NotFoundError"
	KindConflict       Kind = "ConflictError"
	KindAuth           Kind = "AuthError"
	KindInternal       Kind = "InternalError"
)

// Codes are stable and meant for clients to branch on.
const (
	CodeAuth           = "AUTH_ERROR"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeValidation     = "VALIDATION_ERROR"
	CodeAdmissionLimit = "ADMISSION_LIMIT"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Response is the JSON error envelope.
type Response struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"status"`
}

func Validation(message string, details any) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeValidation,
		Message: message,
		Details: details,
		Status:  http.StatusBadRequest,
	}
}

// AdmissionLimit is used for both the daily workout cap (400) and the saved items cap (403).
func AdmissionLimit(message string, status int) *Error {
	return &Error{
		Kind:    KindAdmissionLimit,
		Code:    CodeAdmissionLimit,
		Message: message,
		Status:  status,
	}
}

func NotFound(message string, err error) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: message,
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func Conflict(message string, err error) *Error {
	return &Error{
		Kind:    KindConflict,
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func Auth(message string) *Error {
	return &Error{
		Kind:    KindAuth,
		Code:    CodeAuth,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

func TokenExpired() *Error {
	return &Error{
		Kind:    KindAuth,
		Code:    CodeTokenExpired,
		Message: "Invalid or expired token",
		Status:  http.StatusUnauthorized,
	}
}

func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// From converts any error into an *Error. Constraint violations that slipped past
// validation become client errors, anything else unknown is internal.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case pkg.IsCheckViolationError(err):
		return Validation("Validation failed", nil)
	case pkg.IsForeignKeyViolationError(err):
		return NotFound("Referenced resource not found", err)
	}
	return Internal(err)
}

func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

func Write(w http.ResponseWriter, err error) {
	apiErr := From(err)
	if apiErr.Kind == KindInternal {
		log.Errorf("internal error: %s", err)
	} else {
		log.Debugf("request rejected [%s]: %s", apiErr.Code, apiErr.Message)
	}

	pkg.WriteJSON(w, Response{
		Error:   apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
		Status:  apiErr.Status,
	}, apiErr.Status)
}
