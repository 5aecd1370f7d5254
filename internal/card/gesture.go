package card

import (
	"sync"
	"time"

	"codeberg.org/snonux/kanacards/internal/clock"
)

// DefaultLongPress is how long the card must be held to request the next word
const DefaultLongPress = 600 * time.Millisecond

// Background is the press target for the card area outside every slot
const Background = -1

// GestureState is the phase of the current press
type GestureState int

const (
	Idle GestureState = iota
	Pressing
	TapResolved
	LongPressFired
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pressing:
		return "Pressing"
	case TapResolved:
		return "TapResolved"
	case LongPressFired:
		return "LongPressFired"
	default:
		return "Unknown"
	}
}

// GestureController tells a tap from a long press. The press origin is
// captured on pointer-down and used unchanged when the press resolves.
//
// Every press gets a new session number. A timer callback only acts when
// its session is still the current one, so a timer that loses the race
// with Stop after a cancel, a new press or Close does nothing.
type GestureController struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	state   GestureState
	origin  int
	fired   bool
	session uint64
	timer   clock.Timer
	closed  bool

	onTap       func(origin int)
	onLongPress func()
}

// NewGestureController creates an idle controller. onTap receives the press
// origin (a slot index or Background); onLongPress runs once per long press.
func NewGestureController(c clock.Clock, delay time.Duration, onTap func(origin int), onLongPress func()) *GestureController {
	if c == nil {
		c = clock.New()
	}
	if delay <= 0 {
		delay = DefaultLongPress
	}
	return &GestureController{
		clock:       c,
		delay:       delay,
		origin:      Background,
		onTap:       onTap,
		onLongPress: onLongPress,
	}
}

// Press starts a session for a pointer-down on origin. A session that is
// still pending is dropped together with its timer.
func (g *GestureController) Press(origin int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}

	g.stopTimer()
	g.session++
	session := g.session

	g.fired = false
	g.origin = origin
	g.state = Pressing
	g.timer = g.clock.AfterFunc(g.delay, func() {
		g.expire(session)
	})
}

// Release resolves a pointer-up. Before the delay it is a tap on the
// captured origin; after a long press it only ends the session.
func (g *GestureController) Release() {
	g.mu.Lock()

	switch g.state {
	case Pressing:
		g.stopTimer()
		g.state = TapResolved
		origin, session, onTap := g.origin, g.session, g.onTap
		g.mu.Unlock()

		if onTap != nil {
			onTap(origin)
		}

		g.mu.Lock()
		if g.session == session && g.state == TapResolved {
			g.state = Idle
		}
		g.mu.Unlock()

	case LongPressFired:
		g.state = Idle
		g.mu.Unlock()

	default:
		g.mu.Unlock()
	}
}

// Cancel aborts the session without any action. Used for pointer-leave,
// pointer-cancel and word changes.
func (g *GestureController) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopTimer()
	if g.state != Idle {
		g.session++
		g.state = Idle
	}
}

// Close cancels any pending timer and ignores all later presses
func (g *GestureController) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopTimer()
	g.session++
	g.state = Idle
	g.closed = true
}

// State returns the current phase
func (g *GestureController) State() GestureState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// LongPressFired reports whether the latest session ended in a long press.
// It is cleared by the next Press.
func (g *GestureController) LongPressFired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fired
}

// Origin returns the target captured by the latest Press
func (g *GestureController) Origin() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.origin
}

func (g *GestureController) expire(session uint64) {
	g.mu.Lock()
	if g.closed || session != g.session || g.state != Pressing {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	g.state = LongPressFired
	g.fired = true
	onLongPress := g.onLongPress
	g.mu.Unlock()

	if onLongPress != nil {
		onLongPress()
	}
}

// stopTimer must be called with g.mu held
func (g *GestureController) stopTimer() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
