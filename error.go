package cyprus

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	// ErrAlreadySent is returned by a terminal send when the response was already completed.
	ErrAlreadySent = errors.New("cyprus: response already sent")

	// ErrBodyDecode marks failures to decode a request body that declares itself as JSON.
	ErrBodyDecode = errors.New("cyprus: failed to decode request body")

	// ErrRegistration marks setup failures, such as a static asset root that does not exist. These
	// must stop the application from starting.
	ErrRegistration = errors.New("cyprus: registration failed")
)

// Code is an error code that mirrors the http status codes. Handlers can return an [*Error] to have
// the failure boundary answer with that status instead of a 500.
type Code int

const (
	CodeUnknown             Code = 0
	CodeBadRequest          Code = http.StatusBadRequest          // RFC 9110, 15.5.1
	CodeUnauthorized        Code = http.StatusUnauthorized        // RFC 9110, 15.5.2
	CodeForbidden           Code = http.StatusForbidden           // RFC 9110, 15.5.4
	CodeNotFound            Code = http.StatusNotFound            // RFC 9110, 15.5.5
	CodeMethodNotAllowed    Code = http.StatusMethodNotAllowed    // RFC 9110, 15.5.6
	CodeConflict            Code = http.StatusConflict            // RFC 9110, 15.5.10
	CodeUnprocessableEntity Code = http.StatusUnprocessableEntity // RFC 9110, 15.5.21
	CodeTooManyRequests     Code = http.StatusTooManyRequests     // RFC 6585, 4

	CodeInternalServerError Code = http.StatusInternalServerError // RFC 9110, 15.6.1
	CodeNotImplemented      Code = http.StatusNotImplemented      // RFC 9110, 15.6.2
	CodeServiceUnavailable  Code = http.StatusServiceUnavailable  // RFC 9110, 15.6.4
)

// Error describes an http error.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Error() string {
	status := http.StatusText(int(e.Code()))
	if status == "" {
		status = "Unknown"
	}

	if e.err == nil {
		return status
	}

	return fmt.Sprintf("%s: %s", status, e.err.Error())
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Code()
	}

	return CodeUnknown
}

// panicError turns a recovered value into an error. It is called from the deferred recover so the
// captured stack still contains the frames of the panicking handler.
func panicError(p any) error {
	if err, ok := p.(error); ok {
		return errors.Wrap(err, "panic")
	}

	return errors.Newf("panic: %v", p)
}
