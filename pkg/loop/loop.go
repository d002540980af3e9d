// Package loop provides the single-threaded event loop the element runtime
// runs on.
//
// The loop has three queues, drained in browser order:
//
//   - tasks: posted with Post (or Dispatch from other goroutines)
//   - microtasks: queued with QueueMicrotask, drained after every task and
//     after every animation frame callback
//   - animation frames: registered with RequestAnimationFrame and run once
//     per Frame, in registration order
//
// Nothing except Dispatch is safe for concurrent use. All element, style and
// component code is expected to run from loop callbacks.
package loop

import (
	"context"
	"sync"
	"time"
)

// FrameID identifies a pending animation frame callback.
// The zero value never identifies a callback.
type FrameID uint64

type frameRequest struct {
	id FrameID
	fn func(time.Time)
}

// Loop is a cooperative event loop.
type Loop struct {
	dispatchMu sync.Mutex
	dispatched []func()

	tasks      []func()
	microtasks []func()
	frames     []frameRequest
	cancelled  map[FrameID]bool
	nextID     FrameID
	clock      Clock
	frameCount uint64

	// OnNeedsFrame is called when a frame callback is requested while none
	// was pending, so a host driver can wake up and schedule a frame.
	OnNeedsFrame func()
}

// New creates an idle loop that uses the system clock.
func New() *Loop {
	return &Loop{
		clock:     realClock{},
		cancelled: make(map[FrameID]bool),
	}
}

// SetClock replaces the frame clock and returns the previous one.
func (l *Loop) SetClock(c Clock) Clock {
	prev := l.clock
	if c == nil {
		c = realClock{}
	}
	l.clock = c
	return prev
}

// Now returns the current time from the loop clock.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Post queues a task.
func (l *Loop) Post(task func()) {
	if task == nil {
		return
	}
	l.tasks = append(l.tasks, task)
}

// Dispatch queues a task from any goroutine. It returns false when fn is nil.
func (l *Loop) Dispatch(fn func()) bool {
	if fn == nil {
		return false
	}
	l.dispatchMu.Lock()
	l.dispatched = append(l.dispatched, fn)
	l.dispatchMu.Unlock()
	return true
}

// QueueMicrotask queues fn to run at the end of the current task.
func (l *Loop) QueueMicrotask(fn func()) {
	if fn == nil {
		return
	}
	l.microtasks = append(l.microtasks, fn)
}

// RunMicrotasks drains the microtask queue, including microtasks queued by
// the ones being run, and returns how many ran.
func (l *Loop) RunMicrotasks() int {
	n := 0
	for len(l.microtasks) > 0 {
		fn := l.microtasks[0]
		l.microtasks[0] = nil
		l.microtasks = l.microtasks[1:]
		fn()
		n++
	}
	l.microtasks = nil
	return n
}

// RunUntilIdle runs queued tasks (dispatched ones first) until none remain,
// draining microtasks after each. Animation frames are not run.
func (l *Loop) RunUntilIdle() int {
	n := l.RunMicrotasks()
	for {
		l.dispatchMu.Lock()
		if len(l.dispatched) > 0 {
			l.tasks = append(l.dispatched, l.tasks...)
			l.dispatched = nil
		}
		l.dispatchMu.Unlock()

		if len(l.tasks) == 0 {
			return n
		}
		task := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		task()
		n++
		n += l.RunMicrotasks()
	}
}

// RequestAnimationFrame registers fn to run on the next Frame.
func (l *Loop) RequestAnimationFrame(fn func(time.Time)) FrameID {
	if fn == nil {
		return 0
	}
	wasIdle := l.PendingFrames() == 0
	l.nextID++
	id := l.nextID
	l.frames = append(l.frames, frameRequest{id: id, fn: fn})
	if wasIdle && l.OnNeedsFrame != nil {
		l.OnNeedsFrame()
	}
	return id
}

// CancelAnimationFrame cancels a pending frame callback. Unknown or already
// run ids are ignored.
func (l *Loop) CancelAnimationFrame(id FrameID) {
	if id == 0 {
		return
	}
	for _, req := range l.frames {
		if req.id == id {
			l.cancelled[id] = true
			return
		}
	}
}

// PendingFrames returns the number of frame callbacks that will run on the
// next Frame.
func (l *Loop) PendingFrames() int {
	return len(l.frames) - len(l.cancelled)
}

// Frame runs the frame callbacks registered before it started. Callbacks
// requested during the frame run on the following one. Microtasks are
// drained after each callback. It returns the number of callbacks run.
func (l *Loop) Frame() int {
	batch := l.frames
	cancelled := l.cancelled
	l.frames = nil
	l.cancelled = make(map[FrameID]bool)
	l.frameCount++

	now := l.clock.Now()
	n := 0
	for _, req := range batch {
		if cancelled[req.id] {
			continue
		}
		req.fn(now)
		n++
		l.RunMicrotasks()
	}
	return n
}

// FrameCount returns how many frames have run.
func (l *Loop) FrameCount() uint64 {
	return l.frameCount
}

// NeedsWork reports whether any task, microtask or frame callback is pending.
func (l *Loop) NeedsWork() bool {
	l.dispatchMu.Lock()
	dispatched := len(l.dispatched)
	l.dispatchMu.Unlock()
	return dispatched > 0 || len(l.tasks) > 0 || len(l.microtasks) > 0 || l.PendingFrames() > 0
}

// Run drives the loop until ctx is done: tasks are drained continuously and
// a frame runs every FrameInterval when callbacks are pending.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		l.RunUntilIdle()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.PendingFrames() > 0 {
				l.Frame()
			}
		}
	}
}
