package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sony/gobreaker/v2"
)

// FetchErrorClass names why an upstream fetch failed.
type FetchErrorClass string

const (
	FetchTimeout        FetchErrorClass = "timeout"
	FetchNetwork        FetchErrorClass = "network"
	FetchUpstreamStatus FetchErrorClass = "upstream_status"
	FetchBodyRead       FetchErrorClass = "body_read"
	FetchCircuitOpen    FetchErrorClass = "circuit_open"
	// FetchCanceled means the caller went away before the fetch finished.
	FetchCanceled FetchErrorClass = "canceled"
)

// FetchError is returned by FeedRepository.Fetch for every failure.
type FetchError struct {
	Class      FetchErrorClass
	StatusCode int // set for FetchUpstreamStatus
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch feed (%s): %v", e.Class, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// classifyTransportError maps a client.Do error to a FetchError.
func classifyTransportError(err error) *FetchError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return &FetchError{Class: FetchCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &FetchError{Class: FetchTimeout, Err: err}
	default:
		return &FetchError{Class: FetchNetwork, Err: err}
	}
}

// classifyBreakerError wraps the breaker's rejection errors; errors produced
// by the fetch itself pass through untouched.
func classifyBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &FetchError{Class: FetchCircuitOpen, Err: err}
	}
	return err
}

// IsCanceled reports whether err is a fetch abandoned by its caller.
func IsCanceled(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Class == FetchCanceled
}
