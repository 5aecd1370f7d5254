package gui

import (
	"reflect"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/kanacards/internal/card"
	"codeberg.org/snonux/kanacards/internal/clock"
)

func newTestCardView(t *testing.T) (*CardView, *card.FlashCard, *int) {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	config := card.DefaultConfig()
	config.Clock = clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := card.New(config)
	t.Cleanup(c.Close)
	c.SetWord("ねこ")

	presses := 0
	v := NewCardView(c, func() { presses++ })
	return v, c, &presses
}

var primary = &desktop.MouseEvent{Button: desktop.MouseButtonPrimary}

func TestCardViewFollowsCard(t *testing.T) {
	v, c, _ := newTestCardView(t)

	if len(v.slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(v.slots))
	}
	if got := v.slots[0].text.Text; got != "ネ" {
		t.Errorf("slot 0 text = %q, want ネ", got)
	}
	if v.empty.Visible() {
		t.Error("empty label should be hidden while a word is shown")
	}

	c.SetWord("")
	v.Update()
	if len(v.slots) != 0 || !v.empty.Visible() {
		t.Errorf("empty word: %d slots, empty label visible %v", len(v.slots), v.empty.Visible())
	}
}

func TestSlotViewClickCyclesSlot(t *testing.T) {
	v, c, presses := newTestCardView(t)

	v.slots[1].MouseDown(primary)
	v.slots[1].MouseUp(primary)
	v.Update()

	if got := c.ModeVector(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("ModeVector() = %v, want [0 1]", got)
	}
	if got := v.slots[1].text.Text; got != "こ" {
		t.Errorf("slot 1 text = %q, want こ", got)
	}
	if *presses != 1 {
		t.Errorf("onPress calls = %d, want 1", *presses)
	}
}

func TestSlotViewIgnoresSecondaryButton(t *testing.T) {
	v, c, presses := newTestCardView(t)

	secondary := &desktop.MouseEvent{Button: desktop.MouseButtonSecondary}
	v.slots[0].MouseDown(secondary)
	v.slots[0].MouseUp(secondary)

	if got := c.ModeVector(); !reflect.DeepEqual(got, []int{0, 0}) {
		t.Errorf("ModeVector() = %v, want [0 0]", got)
	}
	if *presses != 0 {
		t.Errorf("onPress calls = %d, want 0", *presses)
	}
}

func TestCardViewBackgroundClickCyclesAll(t *testing.T) {
	v, c, _ := newTestCardView(t)

	v.MouseDown(primary)
	v.MouseUp(primary)

	if got := c.ModeVector(); !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("ModeVector() = %v, want [1 1]", got)
	}
}

func TestCardViewMouseOutAbortsPress(t *testing.T) {
	v, c, _ := newTestCardView(t)

	v.MouseDown(primary)
	v.MouseOut()
	v.MouseUp(primary)

	if got := c.ModeVector(); !reflect.DeepEqual(got, []int{0, 0}) {
		t.Errorf("ModeVector() = %v, want [0 0]", got)
	}
	if got := c.GestureState(); got != card.Idle {
		t.Errorf("GestureState() = %v, want Idle", got)
	}
}

func TestEdgeStripSwipe(t *testing.T) {
	test.NewApp()

	var start, end float64
	swipes := 0
	taps := 0
	e := NewEdgeStrip(func() { taps++ }, func(startX, endX float64) {
		swipes++
		start, end = startX, endX
	})

	e.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 5)}, Dragged: fyne.NewDelta(5, 0)})
	e.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(80, 5)}, Dragged: fyne.NewDelta(70, 0)})
	e.DragEnd()

	if swipes != 1 || start != 5 || end != 80 {
		t.Errorf("swipe = %d calls from %v to %v, want 1 from 5 to 80", swipes, start, end)
	}

	e.Tapped(&fyne.PointEvent{})
	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}

	// A fresh drag measures from its own start
	e.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(3, 5)}, Dragged: fyne.NewDelta(1, 0)})
	e.DragEnd()
	if start != 2 || end != 3 {
		t.Errorf("second swipe from %v to %v, want 2 to 3", start, end)
	}
}

func TestMenuPanelReportsActivity(t *testing.T) {
	test.NewApp()

	activity := 0
	p := NewMenuPanel(container.NewStack(), func() { activity++ })

	p.MouseIn(&desktop.MouseEvent{})
	p.MouseMoved(&desktop.MouseEvent{})
	p.MouseOut()

	if activity != 2 {
		t.Errorf("activity = %d, want 2", activity)
	}
}
