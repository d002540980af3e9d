package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler installs h as the global error handler and returns the one it
// replaces. A nil h restores a plain LogHandler.
func SetHandler(h ErrorHandler) (previous ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	previous, handler = handler, h
	return previous
}

// CurrentHandler returns the global error handler.
func CurrentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Report sends an error to the global handler, stamping it when
// Timestamp is zero.
func Report(err *ElementError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	CurrentHandler().HandleError(err)
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	CurrentHandler().HandlePanic(err)
}

// ReportRender sends a render failure to the global handler.
func ReportRender(err *RenderError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	CurrentHandler().HandleRenderError(err)
}

// Recover reports a panic in progress as a PanicError. Use it deferred:
//
//	defer errors.Recover("loop.Frame")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{Op: op, Value: r, StackTrace: CaptureStack()})
	}
}

// RecoverRender reports a panic in progress as the render failure of tag
// and calls after, if set, with the panic value. The component stays
// alive.
//
//	defer errors.RecoverRender(c.Tag(), nil)
func RecoverRender(tag string, after func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	ReportRender(&RenderError{Tag: tag, Recovered: r, StackTrace: CaptureStack()})
	if after != nil {
		after(r)
	}
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame. Frames inside the Go runtime (panic machinery) are
// left out.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
