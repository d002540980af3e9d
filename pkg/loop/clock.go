package loop

import "time"

// Clock provides the time stamps passed to animation frame callbacks.
// Tests inject a fake clock via Loop.SetClock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// FrameInterval is the frame period used by Run.
const FrameInterval = 16 * time.Millisecond
