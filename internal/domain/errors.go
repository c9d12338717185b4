package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidLevel   = errors.New("invalid nuts level")
	ErrUnknownYear    = errors.New("unknown year")
	ErrUnknownCountry = errors.New("unknown country")
	ErrDataFormat     = errors.New("data format error")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrNetwork        = errors.New("network error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindInvalidInput   ErrorKind = "invalid_input"
	KindInvalidLevel   ErrorKind = "invalid_level"
	KindUnknownYear    ErrorKind = "unknown_year"
	KindUnknownCountry ErrorKind = "unknown_country"
	KindDataFormat     ErrorKind = "data_format"
	KindInvalidConfig  ErrorKind = "invalid_config"
	KindNetwork        ErrorKind = "network"
	KindExecution      ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or URL
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
