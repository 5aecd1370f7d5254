package card

import (
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/kanacards/internal"
	"codeberg.org/snonux/kanacards/internal/clock"
	"codeberg.org/snonux/kanacards/internal/script"
)

// Slot is what a front end needs to draw one character position
type Slot struct {
	Index     int
	Char      string
	Display   string
	Label     string
	Mode      script.Mode
	ModeIndex int
}

// Config holds flash card configuration
type Config struct {
	Modes          []script.Mode
	Transliterator script.Transliterator
	LongPress      time.Duration
	Clock          clock.Clock
}

// DefaultConfig returns the default card configuration
func DefaultConfig() *Config {
	return &Config{
		Modes:          append([]script.Mode(nil), script.DefaultModes...),
		Transliterator: script.NewKana(),
		LongPress:      DefaultLongPress,
		Clock:          clock.New(),
	}
}

// FlashCard shows one word as a row of slots. Tapping a slot cycles that
// slot's script, tapping the background cycles all slots together and a
// long press calls the OnNext callback.
type FlashCard struct {
	mu       sync.Mutex
	modes    []script.Mode
	translit script.Transliterator
	chars    []string
	word     string
	slots    *SlotState
	gesture  *GestureController
	closed   bool

	onNext   func()
	onChange func()
}

// New creates a flash card with no word
func New(config *Config) *FlashCard {
	defaults := DefaultConfig()
	cfg := *defaults
	if config != nil {
		cfg = *config
	}
	if len(cfg.Modes) == 0 {
		cfg.Modes = defaults.Modes
	}
	if cfg.Transliterator == nil {
		cfg.Transliterator = defaults.Transliterator
	}
	if cfg.Clock == nil {
		cfg.Clock = defaults.Clock
	}

	c := &FlashCard{
		modes:    append([]script.Mode(nil), cfg.Modes...),
		translit: cfg.Transliterator,
		slots:    NewSlotState(len(cfg.Modes)),
	}
	c.gesture = NewGestureController(cfg.Clock, cfg.LongPress, c.tap, c.requestAdvance)
	return c
}

// SetWord shows a new word. All slot modes and the cycle-all cursor are
// reset and a pending long press is dropped before the next render.
func (c *FlashCard) SetWord(word string) {
	c.gesture.Cancel()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.word = word
	c.chars = internal.Graphemes(word)
	c.slots.Reset(len(c.chars))
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// Word returns the current word
func (c *FlashCard) Word() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.word
}

// Len returns the number of slots
func (c *FlashCard) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chars)
}

// SetOnNext sets the callback run when a long press asks for the next word
func (c *FlashCard) SetOnNext(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNext = f
}

// SetOnChange sets the callback run after anything visible changed
func (c *FlashCard) SetOnChange(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = f
}

// PointerDown starts a press on target, a slot index or Background.
// Presses on an empty card are ignored.
func (c *FlashCard) PointerDown(target int) {
	c.mu.Lock()
	ignore := c.closed || len(c.chars) == 0
	c.mu.Unlock()

	if ignore {
		return
	}
	c.gesture.Press(target)
}

// PointerUp ends the press. Where the pointer is now does not matter.
func (c *FlashCard) PointerUp() {
	c.gesture.Release()
}

// PointerLeave aborts the press when the pointer leaves the card
func (c *FlashCard) PointerLeave() {
	c.gesture.Cancel()
}

// PointerCancel aborts the press when the platform cancels the pointer
func (c *FlashCard) PointerCancel() {
	c.gesture.Cancel()
}

// CycleSlot advances one slot to its next script
func (c *FlashCard) CycleSlot(index int) {
	c.mu.Lock()
	changed := !c.closed && c.slots.CycleOne(index)
	onChange := c.onChange
	c.mu.Unlock()

	if changed && onChange != nil {
		onChange()
	}
}

// CycleAll moves every slot to the next global script
func (c *FlashCard) CycleAll() {
	c.mu.Lock()
	if c.closed || c.slots.Len() == 0 {
		c.mu.Unlock()
		return
	}
	c.slots.CycleAll(c.slots.AdvanceCursor())
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// Slots returns the rendering data for every slot
func (c *FlashCard) Slots() []Slot {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Slot, len(c.chars))
	for i, ch := range c.chars {
		idx := c.slots.Mode(i)
		mode := c.modes[idx]
		result[i] = Slot{
			Index:     i,
			Char:      ch,
			Display:   script.Transform(c.translit, mode, ch),
			Label:     mode.Label(),
			Mode:      mode,
			ModeIndex: idx,
		}
	}
	return result
}

// Display joins the displayed strings of all slots
func (c *FlashCard) Display() string {
	var b strings.Builder
	for _, s := range c.Slots() {
		b.WriteString(s.Display)
	}
	return b.String()
}

// Reading renders the whole word in mode. Unlike Display it converts the
// word as one unit, so digraphs and doubled consonants come out right.
func (c *FlashCard) Reading(mode script.Mode) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return script.Transform(c.translit, mode, c.word)
}

// ModeVector returns a copy of the per-slot mode indexes
func (c *FlashCard) ModeVector() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots.Modes()
}

// GlobalMode returns the cycle-all cursor
func (c *FlashCard) GlobalMode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots.Cursor()
}

// Modes returns the configured script cycle
func (c *FlashCard) Modes() []script.Mode {
	return append([]script.Mode(nil), c.modes...)
}

// GestureState returns the phase of the current press
func (c *FlashCard) GestureState() GestureState {
	return c.gesture.State()
}

// Close releases the long-press timer. The card ignores input afterwards.
func (c *FlashCard) Close() {
	c.gesture.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.onNext = nil
	c.onChange = nil
}

func (c *FlashCard) tap(origin int) {
	if origin == Background {
		c.CycleAll()
		return
	}
	c.CycleSlot(origin)
}

func (c *FlashCard) requestAdvance() {
	c.mu.Lock()
	onNext := c.onNext
	c.mu.Unlock()

	if onNext != nil {
		onNext()
	}
}
