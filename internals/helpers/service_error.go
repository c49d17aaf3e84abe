// file: internals/helpers/service_error.go
package helper

import (
	"errors"
	"fmt"
	"net/http"
)

/* ===============================
   ServiceError: error domain dengan kind + field
   Dipakai service layer; controller tinggal memetakan ke HTTP.
=================================*/

const (
	ErrKindInvalidInterval       = "INVALID_INTERVAL"
	ErrKindInvalidRecurrenceRule = "INVALID_RECURRENCE_RULE"
	ErrKindNotInvited            = "NOT_INVITED"
	ErrKindStaleWrite            = "STALE_WRITE"
	ErrKindNotFound              = "NOT_FOUND"
	ErrKindConflict              = "CONFLICT"
	ErrKindValidation            = "VALIDATION_ERROR"
)

type ServiceError struct {
	Kind    string // salah satu ErrKind* di atas
	Field   string // field yang bermasalah (boleh kosong)
	Message string
}

func (e *ServiceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewServiceError(kind, field, message string) *ServiceError {
	return &ServiceError{Kind: kind, Field: field, Message: message}
}

// AsServiceError: unwrap error menjadi *ServiceError kalau memang itu jenisnya
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func serviceErrStatus(kind string) int {
	switch kind {
	case ErrKindInvalidInterval, ErrKindInvalidRecurrenceRule, ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindNotInvited:
		return http.StatusForbidden
	case ErrKindStaleWrite, ErrKindConflict:
		return http.StatusConflict
	case ErrKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
