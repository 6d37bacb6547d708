package resource

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	ErrInvalidName  = errors.New("invalid resource name")
	ErrNotAvailable = errors.New("resource not available")
	ErrStatus       = errors.New("unexpected http status")
	ErrNetwork      = errors.New("network error")
	ErrPersist      = errors.New("persisting bundle failed")
	ErrRegister     = errors.New("registering bundle failed")
)

// ErrorCode classifies transport failures reported with EventNetworkError.
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota
	CodeConnectionRefused
	CodeHostNotFound
	CodeTimeout
	CodeCanceled
)

func (c ErrorCode) String() string {
	switch c {
	case CodeConnectionRefused:
		return "connection_refused"
	case CodeHostNotFound:
		return "host_not_found"
	case CodeTimeout:
		return "timeout"
	case CodeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// StatusError is the result of a fetch answered with anything but 200.
type StatusError struct {
	Name       string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("load %s: %s: %d", e.Name, e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// NetworkError is the result of a fetch that never got an HTTP response.
type NetworkError struct {
	Name string
	URL  string
	Code ErrorCode
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Name, e.Code, e.Err)
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// classify maps a transport error onto an ErrorCode.
func classify(err error) ErrorCode {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnectionRefused
	case errors.As(err, &dnsErr):
		if dnsErr.IsTimeout {
			return CodeTimeout
		}
		return CodeHostNotFound
	case errors.As(err, &netErr) && netErr.Timeout():
		return CodeTimeout
	default:
		return CodeUnknown
	}
}
