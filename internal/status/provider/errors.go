package provider

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for provider calls.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorBadData        ErrorCategory = "bad_data"
	ErrorAuthentication ErrorCategory = "authentication"
	ErrorProviderOutage ErrorCategory = "provider_outage"
	ErrorRateLimited    ErrorCategory = "rate_limited"
	ErrorInternal       ErrorCategory = "internal"
)

// Operation names the three provider calls.
type Operation string

const (
	OpObtainToken   Operation = "token"
	OpSubmitRequest Operation = "submit"
	OpFetchStatus   Operation = "status"
)

// Error wraps a failed provider call with the upstream response, if any.
type Error struct {
	Category   ErrorCategory
	Operation  Operation
	StatusCode int
	Body       string
	Underlying error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("provider %s [%s]", e.Operation, e.Category)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// ErrCircuitOpen is the underlying error of calls rejected by the breaker.
var ErrCircuitOpen = errors.New("circuit open")

// CategoryOf returns the category of a provider error, or ErrorInternal.
func CategoryOf(err error) ErrorCategory {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// categoryForStatus maps a non-200 upstream status code.
func categoryForStatus(code int) ErrorCategory {
	switch {
	case code == 401 || code == 403:
		return ErrorAuthentication
	case code == 429:
		return ErrorRateLimited
	case code == 408 || code == 504:
		return ErrorTimeout
	case code >= 500:
		return ErrorProviderOutage
	default:
		return ErrorBadData
	}
}
