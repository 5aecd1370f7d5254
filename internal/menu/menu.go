// Package menu tracks the visibility of the category side menu. The menu
// hides itself after a period without activity and can be brought back
// from the left screen edge.
package menu

import (
	"sync"
	"time"

	"codeberg.org/snonux/kanacards/internal/clock"
)

const (
	// DefaultTimeout is how long the menu stays open without activity
	DefaultTimeout = 5 * time.Second

	// EdgeWidth is how close to the left edge a swipe must start
	EdgeWidth = 30.0

	// SwipeDistance is how far right a swipe must travel to open the menu
	SwipeDistance = 50.0
)

// Menu is the side menu's visibility state
type Menu struct {
	mu         sync.Mutex
	clock      clock.Clock
	timeout    time.Duration
	visible    bool
	generation uint64
	timer      clock.Timer
	closed     bool
	onChange   func(visible bool)
}

// New creates a visible menu and starts its inactivity timer
func New(c clock.Clock, timeout time.Duration) *Menu {
	if c == nil {
		c = clock.New()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	m := &Menu{clock: c, timeout: timeout, visible: true}
	m.mu.Lock()
	m.arm()
	m.mu.Unlock()
	return m
}

// OnVisibilityChange sets the callback run whenever the menu opens or hides
func (m *Menu) OnVisibilityChange(f func(visible bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = f
}

// Visible reports whether the menu is open
func (m *Menu) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Activity restarts the inactivity timer while the menu is open
func (m *Menu) Activity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.visible && !m.closed {
		m.arm()
	}
}

// PressOutside hides the menu after a press anywhere outside it
func (m *Menu) PressOutside() {
	m.setVisible(false)
}

// EdgePress opens the menu from the left edge strip
func (m *Menu) EdgePress() {
	m.setVisible(true)
}

// Swipe opens the menu for a rightward swipe that starts at the left edge
func (m *Menu) Swipe(startX, endX float64) bool {
	if startX >= EdgeWidth || endX-startX <= SwipeDistance {
		return false
	}
	m.setVisible(true)
	return true
}

// Toggle flips the menu's visibility
func (m *Menu) Toggle() {
	m.mu.Lock()
	visible := !m.visible
	m.mu.Unlock()
	m.setVisible(visible)
}

// Close stops the inactivity timer. Later calls have no effect.
func (m *Menu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disarm()
	m.closed = true
	m.onChange = nil
}

func (m *Menu) setVisible(visible bool) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	changed := m.visible != visible
	m.visible = visible
	if visible {
		m.arm()
	} else {
		m.disarm()
	}
	onChange := m.onChange
	m.mu.Unlock()

	if changed && onChange != nil {
		onChange(visible)
	}
}

// arm must be called with m.mu held
func (m *Menu) arm() {
	m.disarm()
	generation := m.generation
	m.timer = m.clock.AfterFunc(m.timeout, func() {
		m.expire(generation)
	})
}

// disarm must be called with m.mu held
func (m *Menu) disarm() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.generation++
}

func (m *Menu) expire(generation uint64) {
	m.mu.Lock()
	if m.closed || generation != m.generation || !m.visible {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.visible = false
	onChange := m.onChange
	m.mu.Unlock()

	if onChange != nil {
		onChange(false)
	}
}
