package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business-rule failure so the transport layer can map it
// to an HTTP status without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidState // operation not allowed in the current lifecycle status
	KindEligibility  // tier below the category floor
	KindCapacity     // roster already full
	KindDuplicate    // already participant, duplicate invitation, self-invite
	KindValidation
)

// Error is a business failure with a machine-checkable kind and a message
// meant for the API response body.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match two app errors by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return newf(KindForbidden, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return newf(KindInvalidState, format, args...)
}

func Eligibility(format string, args ...interface{}) *Error {
	return newf(KindEligibility, format, args...)
}

func Capacity(format string, args ...interface{}) *Error {
	return newf(KindCapacity, format, args...)
}

func Duplicate(format string, args ...interface{}) *Error {
	return newf(KindDuplicate, format, args...)
}

func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// KindOf extracts the kind of err, or KindUnknown for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps err to the status code the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidState, KindEligibility, KindCapacity, KindDuplicate, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
