package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for translation at the HTTP boundary.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
	KindInternal   Kind = "internal"
)

// Sentinels for errors.Is checks
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrInternal   = errors.New("internal error")
)

// Error carries a Kind, a caller-safe message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel belonging to the error's Kind.
func (e *Error) Is(target error) bool {
	return sentinel(e.Kind) == target
}

// ========== Constructors ==========

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ValidationList reports every violated rule; Message is the first one.
func ValidationList(messages []string) *Error {
	if len(messages) == 0 {
		return Validation("invalid input")
	}
	return &Error{Kind: KindValidation, Message: messages[0], Details: messages}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Storage wraps a transaction or connection failure.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

// Internal wraps anything unanticipated.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "unexpected failure", Err: err}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message of err. Foreign errors yield "".
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

func sentinel(kind Kind) error {
	switch kind {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindStorage:
		return ErrStorage
	default:
		return ErrInternal
	}
}

// DetailsOf returns the validation details of err, or nil.
func DetailsOf(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if len(appErr.Details) > 0 {
			return appErr.Details
		}
		if appErr.Kind == KindValidation {
			return []string{appErr.Message}
		}
	}
	return nil
}
