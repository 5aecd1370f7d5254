package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"codeberg.org/snonux/kanacards/internal"
	"codeberg.org/snonux/kanacards/internal/card"
	"codeberg.org/snonux/kanacards/internal/clock"
	"codeberg.org/snonux/kanacards/internal/menu"
	"codeberg.org/snonux/kanacards/internal/study"
	"codeberg.org/snonux/kanacards/internal/translation"
)

const helpLine = "click: cycle  hold: next  space: all  1-9: slot  n: next  c: reading  m: meaning  l: menu  q: quit"

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleCaption = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMeaning = tcell.StyleDefault.Foreground(tcell.ColorAqua).Italic(true)
	styleEdge    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	// One colour per position in the mode cycle
	modeStyles = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	}
)

// Config holds terminal UI configuration
type Config struct {
	Session     *study.Session
	Translator  *translation.Translator
	MenuTimeout time.Duration

	// Screen and Clock default to the real terminal and wall clock
	Screen tcell.Screen
	Clock  clock.Clock
}

// UI is the terminal front end
type UI struct {
	screen     tcell.Screen
	session    *study.Session
	card       *card.FlashCard
	menu       *menu.Menu
	translator *translation.Translator

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	meaning    string
	meaningFor string

	// Pointer state, only touched by the event loop
	pressing bool
	onCard   bool
	left     bool
}

// New creates the terminal UI. The screen is initialised by Run.
func New(config *Config) (*UI, error) {
	screen := config.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create terminal screen: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &UI{
		screen:     screen,
		session:    config.Session,
		card:       config.Session.Card(),
		menu:       menu.New(config.Clock, config.MenuTimeout),
		translator: config.Translator,
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Run takes over the terminal until the user quits or ctx is cancelled
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	u.screen.EnableMouse()
	defer u.screen.Fini()

	u.wire()
	defer u.shutdown()

	stop := context.AfterFunc(ctx, u.redraw)
	defer stop()

	for {
		u.draw()

		ev := u.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if u.handleKey(ev.Key(), ev.Rune()) {
				return nil
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			u.handleMouse(x, y, ev.Buttons())
		case *tcell.EventInterrupt:
			// Redraw request from a callback
		}
	}
}

// wire routes state changes from timer and lookup goroutines into the
// event loop as interrupts
func (u *UI) wire() {
	u.card.SetOnChange(u.redraw)
	u.session.SetOnUpdate(u.redraw)
	u.menu.OnVisibilityChange(func(bool) { u.redraw() })
}

func (u *UI) shutdown() {
	u.menu.Close()
	u.card.SetOnChange(nil)
	u.session.SetOnUpdate(nil)
	u.cancel()
	u.wg.Wait()
}

func (u *UI) redraw() {
	u.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (u *UI) layout() Layout {
	w, h := u.screen.Size()
	return NewLayout(w, h, u.card.Slots(), u.menu.Visible())
}

// handleKey runs the action bound to a key and reports whether to quit
func (u *UI) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRight:
		u.session.Next()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	if r >= '1' && r <= '9' {
		if index := int(r - '1'); index < u.card.Len() {
			u.card.CycleSlot(index)
		}
		return false
	}

	switch r {
	case 'q', 'Q':
		return true
	case 'n', 'N':
		u.session.Next()
	case ' ':
		u.card.CycleAll()
	case 'c', 'C':
		u.session.ToggleCaption()
	case 'm', 'M':
		u.lookupMeaning()
	case 'l', 'L':
		u.menu.Toggle()
	}
	return false
}

// handleMouse turns button transitions into card gestures. Dragging out
// of the card while the button is held abandons the press.
func (u *UI) handleMouse(x, y int, buttons tcell.ButtonMask) {
	l := u.layout()
	down := buttons&tcell.Button1 != 0

	if l.Menu.Contains(x, y) {
		u.menu.Activity()
	}

	switch {
	case down && !u.pressing:
		u.pressing = true
		u.press(l, x, y)
	case down && u.pressing:
		if u.onCard && !u.left {
			if _, ok := l.Target(x, y); !ok {
				u.left = true
				u.card.PointerLeave()
			}
		}
	case !down && u.pressing:
		u.pressing = false
		if u.onCard {
			u.card.PointerUp()
		}
		u.onCard = false
		u.left = false
	}
}

func (u *UI) press(l Layout, x, y int) {
	categories := u.session.Categories()
	if i, ok := l.MenuItem(x, y, len(categories)); ok {
		u.session.Toggle(categories[i])
		return
	}
	if l.Menu.Contains(x, y) {
		return
	}
	if l.Edge.Contains(x, y) {
		u.menu.EdgePress()
		return
	}

	u.menu.PressOutside()
	if target, ok := l.Target(x, y); ok {
		u.onCard = true
		u.left = false
		u.card.PointerDown(target)
	}
}

// lookupMeaning fetches the current word's meaning in the background
func (u *UI) lookupMeaning() {
	if u.translator == nil || !u.translator.Enabled() {
		u.setMeaning(u.session.Current(), "no OpenAI API key configured")
		return
	}

	word := u.session.Current()
	if word == "" {
		return
	}
	u.setMeaning(word, "looking up...")

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()

		ctx, cancel := context.WithTimeout(u.ctx, 30*time.Second)
		defer cancel()

		meaning, err := u.translator.TranslateWord(ctx, word)
		if err != nil {
			slog.Warn("Meaning lookup failed", "word", word, "error", err)
			meaning = "lookup failed: " + err.Error()
		}
		u.setMeaning(word, meaning)
		u.redraw()
	}()
}

func (u *UI) setMeaning(word, meaning string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.meaning = meaning
	u.meaningFor = word
}

// currentMeaning returns the meaning only while its word is still shown
func (u *UI) currentMeaning() string {
	word := u.session.Current()
	u.mu.Lock()
	defer u.mu.Unlock()
	if word == "" || u.meaningFor != word {
		return ""
	}
	return u.meaning
}

func (u *UI) draw() {
	u.screen.Clear()
	l := u.layout()

	index, total := u.session.Position()
	header := fmt.Sprintf("KanaCards v%s", internal.Version)
	if total > 0 {
		header += fmt.Sprintf("  word %d of %d", index+1, total)
	}
	u.drawText(0, 0, styleTitle, runewidth.Truncate(header, l.Width, "…"))

	if l.Menu.W > 0 {
		u.drawMenu(l)
	}
	for y := l.Edge.Y; y < l.Edge.Y+l.Edge.H; y++ {
		u.screen.SetContent(l.Edge.X, y, '▏', nil, styleEdge)
	}

	slots := u.card.Slots()
	if len(slots) == 0 {
		msg := "Select a category (l opens the menu)"
		u.drawCentered(l.Card, l.Card.Y+1, styleDim, msg)
	}
	for i, slot := range slots {
		if i >= len(l.Slots) {
			break
		}
		r := l.Slots[i]
		style := modeStyles[slot.ModeIndex%len(modeStyles)]
		u.drawCentered(r, r.Y, style, slot.Display)
		u.drawCentered(r, r.Y+1, styleDim, slot.Label)
	}

	area := Rect{X: l.Card.X, W: l.Card.W}
	if caption := u.session.Caption(); caption != "" {
		u.drawCentered(area, l.CaptionY, styleCaption, caption)
	}
	if meaning := u.currentMeaning(); meaning != "" {
		u.drawCentered(area, l.MeaningY, styleMeaning, runewidth.Truncate(meaning, l.Card.W, "…"))
	}
	u.drawText(0, l.StatusY, styleDim, runewidth.Truncate(helpLine, l.Width, "…"))

	u.screen.Show()
}

func (u *UI) drawMenu(l Layout) {
	u.drawText(l.Menu.X+1, l.Menu.Y, styleTitle, "Categories")

	inner := l.Menu.W - 2
	for i, category := range u.session.Categories() {
		y := l.Menu.Y + 1 + i
		if y >= l.Menu.Y+l.Menu.H {
			break
		}
		mark := "[ ] "
		if u.session.IsSelected(category) {
			mark = "[x] "
		}
		u.drawText(l.Menu.X+1, y, styleDefault, runewidth.Truncate(mark+category, inner, "…"))
	}

	border := l.Menu.X + l.Menu.W - 1
	for y := l.Menu.Y; y < l.Menu.Y+l.Menu.H; y++ {
		u.screen.SetContent(border, y, '│', nil, styleEdge)
	}
}

func (u *UI) drawCentered(r Rect, y int, style tcell.Style, text string) {
	x := r.X + max((r.W-runewidth.StringWidth(text))/2, 0)
	u.drawText(x, y, style, text)
}

// drawText writes text from x and returns the column after it
func (u *UI) drawText(x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		u.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
