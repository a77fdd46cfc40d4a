package question

import (
	"errors"
	"fmt"
)

var (
	// ErrQuestionNotFound is returned by stores when an id does not resolve.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrCategoryNotFound marks listings scoped to a category that does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

// Kind classifies an Error for the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	// KindBadRequest: required fields are absent or structurally wrong.
	KindBadRequest
	// KindNotFound: a referenced entity (or an entire listing) does not exist.
	KindNotFound
	// KindUnprocessable: well-formed input that cannot be processed, including
	// invalid filter values and store failures.
	KindUnprocessable
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindUnprocessable:
		return "unprocessable"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by every engine and service call.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest reports missing or malformed input.
func BadRequest(op, format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent entity.
func NotFound(op, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Unprocessable reports semantically invalid input, such as an unknown category filter.
func Unprocessable(op, format string, args ...any) *Error {
	return &Error{Kind: KindUnprocessable, Op: op, Message: fmt.Sprintf(format, args...)}
}

func categoryNotFound(op string, id int64) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf("category %d not found", id), Err: ErrCategoryNotFound}
}

// storeFailure wraps an error from a Store so raw driver errors never escape untyped.
func storeFailure(op string, err error) *Error {
	if errors.Is(err, ErrQuestionNotFound) {
		return &Error{Kind: KindNotFound, Op: op, Message: "question not found", Err: err}
	}
	return &Error{Kind: KindUnprocessable, Op: op, Message: "store failure", Err: err}
}

// KindOf extracts the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ClientMessage returns the message safe to show a caller. Store failures yield ""
// so the envelope falls back to the status text.
func ClientMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	if e.Kind == KindUnprocessable && e.Err != nil {
		return ""
	}
	return e.Message
}

// IsValidation reports whether err is an Unprocessable filter/validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindUnprocessable
}
