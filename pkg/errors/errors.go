// Package errors provides structured error reporting for the element
// runtime.
//
// Nothing in the component core returns these errors to the host
// application. Decode failures, render panics and style problems are
// reported to a swappable global [ErrorHandler] and the element carries on.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindDecode indicates an attribute value that could not be decoded
	// into its property type.
	KindDecode
	// KindRender indicates a failure while rendering or painting.
	KindRender
	// KindStyle indicates a style sheet or rule synthesis failure.
	KindStyle
	// KindLifecycle indicates a failure in a lifecycle callback.
	KindLifecycle
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid theme configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindRender:
		return "render"
	case KindStyle:
		return "style"
	case KindLifecycle:
		return "lifecycle"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ElementError is a structured error raised on behalf of an element.
type ElementError struct {
	// Op is the operation that failed (e.g., "core.attributeChanged").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Tag is the tag of the element involved, if any.
	Tag string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ElementError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s [%s] <%s>: %v", e.Op, e.Kind, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// DecodeError is an attribute value that does not decode into its
// property's type. The property keeps its previous value.
type DecodeError struct {
	// Attribute is the attribute name.
	Attribute string
	// Property is the property name.
	Property string
	// Type is the declared property type.
	Type string
	// Value is the raw attribute value.
	Value string
	// Err is the decoder error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode attribute %s=%q as %s for property %s: %v",
		e.Attribute, e.Value, e.Type, e.Property, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "loop.Frame").
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

// RenderError represents a failure while rendering a component.
type RenderError struct {
	// Tag is the tag of the component that failed.
	Tag string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in <%s> render: %v", e.Tag, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in <%s> render: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("unknown error in <%s> render", e.Tag)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ElementError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleRenderError is called when a component render fails.
	HandleRenderError(err *RenderError)
}
