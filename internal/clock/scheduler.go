package clock

import "time"

// Timer is a pending callback registered with a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the timer was still pending.
	Stop() bool
}

// Scheduler runs delayed callbacks one at a time.
// Implementations must never run two callbacks concurrently.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
