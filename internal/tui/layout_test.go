package tui

import (
	"reflect"
	"testing"

	"codeberg.org/snonux/kanacards/internal/card"
)

func nekoSlots() []card.Slot {
	return []card.Slot{
		{Index: 0, Char: "ね", Display: "ネ", Label: "Katakana"},
		{Index: 1, Char: "こ", Display: "コ", Label: "Katakana"},
	}
}

func TestNewLayoutCentersSlots(t *testing.T) {
	tests := []struct {
		name        string
		menuVisible bool
		card        Rect
		slots       []Rect
	}{
		{
			name:  "menu hidden",
			card:  Rect{X: 1, Y: 9, W: 79, H: cardHeight},
			slots: []Rect{{X: 31, Y: 10, W: 8, H: 2}, {X: 41, Y: 10, W: 8, H: 2}},
		},
		{
			name:        "menu visible",
			menuVisible: true,
			card:        Rect{X: 24, Y: 9, W: 56, H: cardHeight},
			slots:       []Rect{{X: 43, Y: 10, W: 8, H: 2}, {X: 53, Y: 10, W: 8, H: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(80, 24, nekoSlots(), tt.menuVisible)
			if l.Card != tt.card {
				t.Errorf("Card = %+v, want %+v", l.Card, tt.card)
			}
			if !reflect.DeepEqual(l.Slots, tt.slots) {
				t.Errorf("Slots = %+v, want %+v", l.Slots, tt.slots)
			}
		})
	}
}

func TestNewLayoutEdgeAndMenu(t *testing.T) {
	hidden := NewLayout(80, 24, nil, false)
	if hidden.Edge != (Rect{X: 0, Y: 1, W: 1, H: 22}) {
		t.Errorf("Edge = %+v", hidden.Edge)
	}
	if hidden.Menu.W != 0 {
		t.Errorf("Menu should be empty when hidden, got %+v", hidden.Menu)
	}

	visible := NewLayout(80, 24, nil, true)
	if visible.Menu != (Rect{X: 0, Y: 1, W: menuWidth, H: 22}) {
		t.Errorf("Menu = %+v", visible.Menu)
	}
	if visible.Edge.W != 0 {
		t.Errorf("Edge should be empty when the menu is open, got %+v", visible.Edge)
	}

	if visible.StatusY != 23 || visible.MeaningY != 22 || visible.CaptionY != 21 {
		t.Errorf("footer rows = %d/%d/%d", visible.CaptionY, visible.MeaningY, visible.StatusY)
	}
}

func TestLayoutTarget(t *testing.T) {
	l := NewLayout(80, 24, nekoSlots(), false)

	tests := []struct {
		name   string
		x, y   int
		target int
		ok     bool
	}{
		{"first slot", 32, 10, 0, true},
		{"second slot label row", 45, 11, 1, true},
		{"gap between slots", 39, 10, card.Background, true},
		{"card margin", 5, 9, card.Background, true},
		{"above card", 40, 3, 0, false},
		{"edge strip", 0, 10, 0, false},
		{"status line", 40, 23, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := l.Target(tt.x, tt.y)
			if ok != tt.ok || (ok && target != tt.target) {
				t.Errorf("Target(%d, %d) = %d, %v; want %d, %v", tt.x, tt.y, target, ok, tt.target, tt.ok)
			}
		})
	}
}

func TestLayoutMenuItem(t *testing.T) {
	l := NewLayout(80, 24, nil, true)

	tests := []struct {
		name string
		x, y int
		item int
		ok   bool
	}{
		{"title", 2, 1, 0, false},
		{"first item", 2, 2, 0, true},
		{"last item", 2, 4, 2, true},
		{"below items", 2, 5, 0, false},
		{"outside menu", 30, 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := l.MenuItem(tt.x, tt.y, 3)
			if ok != tt.ok || (ok && item != tt.item) {
				t.Errorf("MenuItem(%d, %d) = %d, %v; want %d, %v", tt.x, tt.y, item, ok, tt.item, tt.ok)
			}
		})
	}
}

func TestSlotWidth(t *testing.T) {
	tests := []struct {
		slot card.Slot
		want int
	}{
		{card.Slot{Display: "ン"}, 2},
		{card.Slot{Display: "a"}, 2},
		{card.Slot{Display: "tsu"}, 3},
		{card.Slot{Display: "ン", Label: "Hiragana"}, 8},
	}

	for _, tt := range tests {
		if got := slotWidth(tt.slot); got != tt.want {
			t.Errorf("slotWidth(%q, %q) = %d, want %d", tt.slot.Display, tt.slot.Label, got, tt.want)
		}
	}
}
