package types

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failure of the remote completion call so callers can
// pick a retry policy without inspecting error strings.
type ErrorKind string

const (
	KindUnknown           ErrorKind = "unknown"
	KindNetwork           ErrorKind = "network"
	KindTimeout           ErrorKind = "timeout"
	KindAuthentication    ErrorKind = "authentication"
	KindRateLimit         ErrorKind = "rate_limit"
	KindInvalidRequest    ErrorKind = "invalid_request"
	KindService           ErrorKind = "service"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// Retryable reports whether a failure of this kind may succeed on a later attempt.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindNetwork, KindTimeout, KindRateLimit, KindService:
		return true
	default:
		return false
	}
}

// ClassifiedError tags an underlying error with its kind. The message is the
// underlying message, unchanged.
type ClassifiedError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassifiedError) Error() string {
	return e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// Classify wraps err as a ClassifiedError of the given kind.
func Classify(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{Kind: kind, Err: err}
}

// KindOf returns the kind recorded anywhere in err's chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var genErr *ExplanationGenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	return KindUnknown
}

// ExplanationGenerationError is returned when an explanation could not be
// produced. The original message is kept in the text and the original error
// stays reachable through Unwrap.
type ExplanationGenerationError struct {
	Kind ErrorKind
	Word string
	Err  error
}

func (e *ExplanationGenerationError) Error() string {
	return fmt.Sprintf("error generating word explanation: %v", e.Err)
}

func (e *ExplanationGenerationError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may try the same request again.
func (e *ExplanationGenerationError) Retryable() bool {
	return e.Kind.Retryable()
}

// NewExplanationGenerationError wraps err, carrying over its kind.
func NewExplanationGenerationError(word string, err error) *ExplanationGenerationError {
	return &ExplanationGenerationError{
		Kind: KindOf(err),
		Word: word,
		Err:  err,
	}
}

// ConfigurationError reports missing or invalid configuration. It is never retryable.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}
