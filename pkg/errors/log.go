package errors

import (
	"github.com/go-drift/elements/pkg/logging"
)

// LogHandler is an ErrorHandler that writes errors to the structured
// logger under the "errors" component.
type LogHandler struct {
	// Verbose adds stack traces to the log entries.
	Verbose bool
}

// HandleError logs an ElementError.
func (h *LogHandler) HandleError(err *ElementError) {
	if err == nil {
		return
	}
	ev := logging.Get("errors").Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err)
	if err.Tag != "" {
		ev = ev.Str("tag", err.Tag)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("element error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := logging.Get("errors").Error().
		Str("op", err.Op).
		Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}

// HandleRenderError logs a RenderError.
func (h *LogHandler) HandleRenderError(err *RenderError) {
	if err == nil {
		return
	}
	ev := logging.Get("errors").Error().Str("tag", err.Tag)
	if err.Recovered != nil {
		ev = ev.Interface("panic", err.Recovered)
	}
	if err.Err != nil {
		ev = ev.Err(err.Err)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("render failed")
}
