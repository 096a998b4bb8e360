// Package apperr defines the error kinds every public operation reports.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind string

const (
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindValidation     Kind = "VALIDATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindDatabase       Kind = "DATABASE_ERROR"
	KindUnknown        Kind = "UNKNOWN_ERROR"
)

// Error is a classified failure with a message that is safe to show users.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Authentication(message string) *Error {
	if message == "" {
		message = "you must be logged in"
	}
	return New(KindAuthentication, message)
}

func Authorization(message string) *Error {
	if message == "" {
		message = "you do not have access to this workspace"
	}
	return New(KindAuthorization, message)
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// NotFound builds the error for a missing resource, e.g. NotFound("Table").
func NotFound(resource string) *Error {
	return New(KindNotFound, resource+" not found")
}

// Database wraps a store failure under a generic message.
func Database(err error) *Error {
	return &Error{Kind: KindDatabase, Message: "database operation failed, please try again", Err: err}
}

// KindOf classifies any error into one of the kinds.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if IsConstraintViolation(err) {
		return KindDatabase
	}
	return KindUnknown
}

// Message returns the user-facing text for err. Store and unknown failures
// never leak their underlying text.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	switch KindOf(err) {
	case KindNotFound:
		return "resource not found"
	case KindDatabase:
		return "database operation failed, please try again"
	}
	return "an unknown error occurred"
}

// IsConstraintViolation reports integrity constraint failures (SQLSTATE class 23).
func IsConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}
