// Package clock provides the time source used by the flash card and the
// category menu. Production code uses Real; tests drive a Mock forward by
// hand so long-press and inactivity timers fire deterministically.
package clock

import "time"

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	// Stop prevents the timer from firing. It reports false when the timer
	// already fired or was stopped before.
	Stop() bool
}

// Clock supplies the current time and one-shot timers
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the system clock
type Real struct{}

// New returns the system clock
func New() Real {
	return Real{}
}

// Now returns the current wall-clock time
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine once d has elapsed
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
