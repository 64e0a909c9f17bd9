package playback

import "time"

// Timer is a pending scheduled callback
type Timer interface {
	Stop() bool
}

// Scheduler runs deferred callbacks. Sessions never sleep; every retry is
// a scheduled callback that can be cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules on the runtime timer wheel
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
