package errx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
)

// Kind classifies a workflow error for routing and retry decisions.
// Only the four upstream kinds are considered recoverable by the stage
// contract; everything else terminates the run through the error edge.
type Kind string

const (
	KindRateLimit  Kind = "rate_limit"
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"
	KindAPI        Kind = "api_error"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// Recoverable reports whether errors of this kind are transient upstream
// failures that a caller may retry at the request level.
func (k Kind) Recoverable() bool {
	switch k {
	case KindRateLimit, KindTimeout, KindConnection, KindAPI:
		return true
	default:
		return false
	}
}

// AppError wraps an underlying error with a kind, an HTTP status and a safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	if e.Err == nil {
		return false
	}
	return errors.As(e.Err, target)
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    KindInternal,
		Status:  status,
		Message: message,
	}
}

// WithKind creates an AppError carrying an explicit kind.
func WithKind(kind Kind, err error, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Status:  http.StatusInternalServerError,
		Message: message,
	}
}

// Validation creates a non-recoverable validation error.
func Validation(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// Timeout creates a recoverable timeout error wrapping err.
func Timeout(err error, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    KindTimeout,
		Status:  http.StatusGatewayTimeout,
		Message: message,
	}
}

// Classify maps an arbitrary error to its Kind. Errors already carrying an
// AppError keep their kind; for everything else the kind is inferred from
// sentinel errors and well-known upstream message fragments.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindConnection
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota exceeded"), strings.Contains(msg, "429"):
		return KindRateLimit
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return KindTimeout
	case strings.Contains(msg, "connection"), strings.Contains(msg, "dial tcp"), strings.Contains(msg, "no such host"):
		return KindConnection
	case strings.Contains(msg, "api error"), strings.Contains(msg, "status 5"), strings.Contains(msg, "googleapi"):
		return KindAPI
	default:
		return KindInternal
	}
}
