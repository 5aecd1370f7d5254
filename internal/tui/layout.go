package tui

import (
	"github.com/mattn/go-runewidth"

	"codeberg.org/snonux/kanacards/internal/card"
)

const (
	// menuWidth is the width of the category column including its border
	menuWidth = 24

	// slotGap is the number of blank cells between two slots
	slotGap = 2

	// cardHeight covers the character row, the label row and a margin
	cardHeight = 5
)

// Rect is a cell rectangle on the screen
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell x, y lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout is where everything goes for one screen size
type Layout struct {
	Width, Height int

	Menu  Rect
	Edge  Rect
	Card  Rect
	Slots []Rect

	CaptionY int
	MeaningY int
	StatusY  int
}

// slotWidth is the width of one slot: the wider of its text and label
func slotWidth(slot card.Slot) int {
	w := runewidth.StringWidth(slot.Display)
	if lw := runewidth.StringWidth(slot.Label); lw > w {
		w = lw
	}
	if w < 2 {
		w = 2
	}
	return w
}

// NewLayout places the menu column, the card and its slots
func NewLayout(width, height int, slots []card.Slot, menuVisible bool) Layout {
	l := Layout{
		Width:    width,
		Height:   height,
		StatusY:  height - 1,
		MeaningY: height - 2,
		CaptionY: height - 3,
	}

	left := 0
	if menuVisible {
		left = min(menuWidth, width)
		l.Menu = Rect{X: 0, Y: 1, W: left, H: max(height-2, 0)}
	} else {
		l.Edge = Rect{X: 0, Y: 1, W: min(1, width), H: max(height-2, 0)}
		left = l.Edge.W
	}

	top := max((height-cardHeight)/2, 1)
	l.Card = Rect{X: left, Y: top, W: max(width-left, 0), H: cardHeight}

	total := 0
	for i, slot := range slots {
		if i > 0 {
			total += slotGap
		}
		total += slotWidth(slot)
	}

	x := l.Card.X + max((l.Card.W-total)/2, 0)
	for _, slot := range slots {
		w := slotWidth(slot)
		l.Slots = append(l.Slots, Rect{X: x, Y: top + 1, W: w, H: 2})
		x += w + slotGap
	}

	return l
}

// Target returns the slot under x, y, card.Background for the rest of the
// card and false when the cell is outside the card.
func (l Layout) Target(x, y int) (int, bool) {
	if !l.Card.Contains(x, y) {
		return 0, false
	}
	for i, r := range l.Slots {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return card.Background, true
}

// MenuItem returns the index of the category line under x, y. The first
// line of the menu is its title.
func (l Layout) MenuItem(x, y int, items int) (int, bool) {
	if !l.Menu.Contains(x, y) {
		return 0, false
	}
	i := y - l.Menu.Y - 1
	if i < 0 || i >= items {
		return 0, false
	}
	return i, true
}
