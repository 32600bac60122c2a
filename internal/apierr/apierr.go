// Package apierr classifies transport failures and LifeUp API responses into
// domain errors that carry a user-safe message and a recoverability flag.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Code is a stable error tag.
type Code string

const (
	CodeConnectionRefused  Code = "CONNECTION_REFUSED"
	CodeHostnameResolution Code = "HOSTNAME_RESOLUTION_FAILED"
	CodeRequestTimeout     Code = "REQUEST_TIMEOUT"
	CodeNetwork            Code = "NETWORK_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeServer             Code = "SERVER_ERROR"
	CodeContentProvider    Code = "CONTENT_PROVIDER_ERROR"
	CodeAPI                Code = "API_ERROR"
	CodeServerUnreachable  Code = "SERVER_UNREACHABLE"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// codeContentProviderError is the app code LifeUp returns when its content
// provider is unavailable, typically because the app was killed or is locked.
const codeContentProviderError = 10002

// SuccessCode is the envelope code LifeUp Cloud uses for a successful call.
const SuccessCode = 200

var userMessages = map[Code]string{
	CodeConnectionRefused:  "Cannot connect to LifeUp. Make sure LifeUp Cloud is running on the device and the host and port are correct.",
	CodeHostnameResolution: "The LifeUp host name could not be resolved. Check the configured host.",
	CodeRequestTimeout:     "LifeUp did not answer in time. Check that the device is awake and on the same network.",
	CodeNetwork:            "A network error occurred while talking to LifeUp.",
	CodeUnauthorized:       "LifeUp rejected the request. Check the configured API token.",
	CodeServer:             "LifeUp reported an internal error. Try again shortly.",
	CodeContentProvider:    "LifeUp could not access its data. Open the LifeUp app and make sure it is unlocked and allowed to run in the background.",
	CodeAPI:                "LifeUp could not complete the request.",
	CodeServerUnreachable:  "LifeUp is not reachable. Start LifeUp Cloud on the device and try again.",
	CodeInternal:           "An unexpected error occurred.",
}

// Error is a classified failure.
type Error struct {
	Code        Code
	Message     string // technical detail, for logs
	UserMessage string // safe to show to the user
	Recoverable bool
	Status      int   // HTTP status, when there was a response
	Cause       error // underlying transport error, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error with the standard user message for code.
func New(code Code, recoverable bool, format string, args ...any) *Error {
	return &Error{
		Code:        code,
		Message:     fmt.Sprintf(format, args...),
		UserMessage: userMessages[code],
		Recoverable: recoverable,
	}
}

// Unreachable reports that the health check ran out of attempts.
func Unreachable(attempts int, last error) *Error {
	e := New(CodeServerUnreachable, true, "no healthy response after %d attempt(s): %v", attempts, last)
	e.Cause = last
	return e
}

// ClassifyTransport classifies an error returned before any HTTP response was
// read. It returns nil for a nil error and passes an existing *Error through.
func ClassifyTransport(err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}

	var (
		code   Code
		dnsErr *net.DNSError
		netErr net.Error
	)
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		code = CodeConnectionRefused
	case errors.As(err, &dnsErr) && !dnsErr.IsTimeout:
		code = CodeHostnameResolution
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		code = CodeRequestTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		code = CodeRequestTimeout
	default:
		code = CodeNetwork
	}
	e := New(code, true, "%v", err)
	e.Cause = err
	return e
}

// ClassifyResponse classifies an HTTP status and the envelope's application code.
// It returns nil when both indicate success.
func ClassifyResponse(status, appCode int, message string) *Error {
	var e *Error
	switch {
	case status == http.StatusUnauthorized:
		e = New(CodeUnauthorized, true, "HTTP %d: %s", status, message)
	case status == http.StatusInternalServerError:
		e = New(CodeServer, true, "HTTP %d: %s", status, message)
	case status < 200 || status > 299:
		e = New(CodeAPI, true, "HTTP %d: %s", status, message)
	case appCode == codeContentProviderError:
		e = New(CodeContentProvider, false, "code %d: %s", appCode, message)
	case appCode != SuccessCode:
		e = New(CodeAPI, true, "code %d: %s", appCode, message)
	default:
		return nil
	}
	e.Status = status
	return e
}

// Classified is implemented by errors raised outside this package that carry
// their own code and user-facing message.
type Classified interface {
	error
	ErrorCode() string
	UserMessage() string
	Recoverable() bool
}

// UserFacing reduces any error to a message safe to show and whether the caller
// may retry after fixing the cause.
func UserFacing(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var cerr Classified
	if errors.As(err, &cerr) {
		return cerr.UserMessage(), cerr.Recoverable()
	}
	var aerr *Error
	if errors.As(err, &aerr) {
		if aerr.UserMessage != "" {
			return aerr.UserMessage, aerr.Recoverable
		}
		return string(aerr.Code), aerr.Recoverable
	}
	return userMessages[CodeInternal], false
}

// CodeOf returns the stable tag for err.
func CodeOf(err error) Code {
	var cerr Classified
	if errors.As(err, &cerr) {
		return Code(cerr.ErrorCode())
	}
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Code
	}
	return CodeInternal
}
