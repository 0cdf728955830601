package api

import (
	"errors"
	"fmt"
)

// Kind classifies the cause of an Error
type Kind int

const (
	// KindTransport covers connection, TLS, timeout and non-2xx failures
	KindTransport Kind = iota + 1
	// KindDecode covers bodies that do not match the endpoint's response shape
	KindDecode
	// KindConfig covers invalid client construction options
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is classification of an *Error
var (
	ErrTransport = errors.New("esplora: transport error")
	ErrDecode    = errors.New("esplora: decode error")
	ErrConfig    = errors.New("esplora: config error")
)

// Error is the single error type returned by the client
type Error struct {
	Kind Kind
	Op   string // client method, e.g. "GetBlock"
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s error: %v", e.Op, e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel matching e.Kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrConfig:
		return e.Kind == KindConfig
	}
	return false
}

// StatusError is the cause of a transport error produced by a non-2xx response
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP error: %q (code %d)", e.Status, e.StatusCode)
	}
	return fmt.Sprintf("HTTP error: %q (code %d): %s", e.Status, e.StatusCode, e.Body)
}

func transportError(op, url string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, URL: url, Err: err}
}

func decodeError(op, url string, err error) *Error {
	return &Error{Kind: KindDecode, Op: op, URL: url, Err: err}
}

func configError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfig, Op: "NewClient", Err: fmt.Errorf(format, args...)}
}
