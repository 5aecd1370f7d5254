package clock

import (
	"sort"
	"sync"
	"time"
)

// Mock is a controllable clock for tests. Timers only fire from Advance,
// synchronously on the calling goroutine.
type Mock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
}

type mockTimer struct {
	clock   *Mock
	when    time.Time
	fn      func()
	done    bool
	stopped bool
}

// NewMock creates a mock clock starting at the given time
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the mocked time
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once the mocked time reaches now+d
func (m *Mock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &mockTimer{clock: m, when: m.now.Add(d), fn: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward and fires every timer that became due,
// in deadline order. Callbacks run without the clock's lock held.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)

	var due []*mockTimer
	pending := m.timers[:0]
	for _, t := range m.timers {
		switch {
		case t.stopped:
		case !t.when.After(m.now):
			t.done = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	m.timers = pending
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].when.Before(due[j].when)
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of timers that are scheduled and not stopped
func (m *Mock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.done {
			n++
		}
	}
	return n
}

// Stop cancels the timer
func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
