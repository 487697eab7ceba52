// Package errors provides structured error handling for tabnav.
//
// Router operations return plain Go errors. When a failure is fatal (a
// JumpTo for a route that does not exist, a malformed configuration, a
// snapshot that cannot be decoded) it is wrapped in a [NavigationError]
// carrying the failing operation and an [ErrorKind], and hosts may forward
// it to the global [ErrorHandler] with [Report].
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRoute indicates a reference to a route that is not in the state.
	KindRoute
	// KindConfig indicates an inconsistent navigator configuration.
	KindConfig
	// KindParsing indicates a snapshot or action script that failed to decode.
	KindParsing
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindRoute:
		return "route"
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// NavigationError represents a structured navigation failure.
type NavigationError struct {
	// Op is the operation that failed (e.g., "navigation.TabRouter.Reduce").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Route is the route name involved, if applicable.
	Route string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *NavigationError) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("%s [%s] route=%q: %v", e.Op, e.Kind, e.Route, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "navigation.TabController.notify").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to decode persisted navigation data.
type ParseError struct {
	// Source names the input (file path, "stdin", ...).
	Source string
	// DataType is the expected type name.
	DataType string
	// Err is the decoder error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to parse %s from %s: %v", e.DataType, e.Source, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.DataType, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first NavigationError in err's chain,
// or KindUnknown.
func KindOf(err error) ErrorKind {
	var navErr *NavigationError
	if errors.As(err, &navErr) {
		return navErr.Kind
	}
	return KindUnknown
}

// ErrorHandler receives errors reported by navigation hosts.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *NavigationError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
