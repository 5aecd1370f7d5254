package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/kanacards/internal/card"
)

const (
	slotTextSize  = 64
	slotLabelSize = 12
)

// CardView draws a flash card and turns mouse input into card pointer
// events. Presses on the background cycle every slot; leaving the card
// aborts a press.
type CardView struct {
	widget.BaseWidget

	card    *card.FlashCard
	onPress func()

	background *canvas.Rectangle
	row        *fyne.Container
	empty      *widget.Label
	slots      []*SlotView
	content    *fyne.Container
}

var (
	_ desktop.Mouseable = (*CardView)(nil)
	_ desktop.Hoverable = (*CardView)(nil)
	_ desktop.Mouseable = (*SlotView)(nil)
)

// NewCardView creates a view for c. onPress runs on every pointer-down
// inside the card, slots included.
func NewCardView(c *card.FlashCard, onPress func()) *CardView {
	v := &CardView{card: c, onPress: onPress}

	v.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	v.background.CornerRadius = 12
	v.background.SetMinSize(fyne.NewSize(320, 220))

	v.row = container.NewHBox()
	v.empty = widget.NewLabel("No words to show. Pick categories from the menu.")
	v.empty.Alignment = fyne.TextAlignCenter

	v.content = container.NewStack(
		v.background,
		container.NewCenter(container.NewVBox(v.row, v.empty)),
	)

	v.ExtendBaseWidget(v)
	v.Update()
	return v
}

// CreateRenderer implements fyne.Widget
func (v *CardView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.content)
}

// Update redraws the slots from the card's current state
func (v *CardView) Update() {
	slots := v.card.Slots()

	if len(slots) != len(v.slots) {
		v.slots = make([]*SlotView, len(slots))
		objects := make([]fyne.CanvasObject, len(slots))
		for i := range slots {
			v.slots[i] = NewSlotView(v, i)
			objects[i] = v.slots[i]
		}
		v.row.Objects = objects
	}

	for i, s := range slots {
		v.slots[i].Set(s)
	}

	if len(slots) == 0 {
		v.empty.Show()
	} else {
		v.empty.Hide()
	}
	v.row.Refresh()
	v.Refresh()
}

// MouseDown implements desktop.Mouseable for presses on the background
func (v *CardView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.press(card.Background)
}

// MouseUp implements desktop.Mouseable
func (v *CardView) MouseUp(*desktop.MouseEvent) {
	v.card.PointerUp()
}

// MouseIn implements desktop.Hoverable
func (v *CardView) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable
func (v *CardView) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable. Slots are not hoverable, so this
// only fires when the pointer leaves the whole card.
func (v *CardView) MouseOut() {
	v.card.PointerLeave()
}

func (v *CardView) press(target int) {
	if v.onPress != nil {
		v.onPress()
	}
	v.card.PointerDown(target)
}

// SlotView shows one character of the card and the script it is shown in
type SlotView struct {
	widget.BaseWidget

	parent *CardView
	index  int

	text    *canvas.Text
	label   *canvas.Text
	content *fyne.Container
}

// NewSlotView creates the view for slot index of parent
func NewSlotView(parent *CardView, index int) *SlotView {
	s := &SlotView{parent: parent, index: index}

	s.text = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	s.text.TextSize = slotTextSize
	s.text.Alignment = fyne.TextAlignCenter

	s.label = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	s.label.TextSize = slotLabelSize
	s.label.Alignment = fyne.TextAlignCenter

	s.content = container.NewPadded(container.NewVBox(
		s.text,
		s.label,
		layout.NewSpacer(),
	))

	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget
func (s *SlotView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

// Set shows slot
func (s *SlotView) Set(slot card.Slot) {
	s.text.Text = slot.Display
	s.text.Color = modeColor(slot.ModeIndex)
	s.label.Text = slot.Label
	s.text.Refresh()
	s.label.Refresh()
}

// MouseDown implements desktop.Mouseable
func (s *SlotView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.parent.press(s.index)
}

// MouseUp implements desktop.Mouseable. The release resolves against the
// slot captured on press, wherever the pointer is now.
func (s *SlotView) MouseUp(*desktop.MouseEvent) {
	s.parent.card.PointerUp()
}

// modeColor tints each script differently so mixed cards are easy to read
func modeColor(index int) color.Color {
	switch index % 3 {
	case 1:
		return theme.Color(theme.ColorNamePrimary)
	case 2:
		return theme.Color(theme.ColorNameSuccess)
	default:
		return theme.Color(theme.ColorNameForeground)
	}
}

// EdgeStrip is the thin bar shown at the left window edge while the side
// menu is hidden. Tapping it or swiping right from it opens the menu.
type EdgeStrip struct {
	widget.BaseWidget

	onTap   func()
	onSwipe func(startX, endX float64)

	bar        *canvas.Rectangle
	dragStartX float32
	dragEndX   float32
	dragging   bool
}

// NewEdgeStrip creates the strip
func NewEdgeStrip(onTap func(), onSwipe func(startX, endX float64)) *EdgeStrip {
	e := &EdgeStrip{onTap: onTap, onSwipe: onSwipe}
	e.bar = canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))
	e.bar.SetMinSize(fyne.NewSize(8, 0))
	e.ExtendBaseWidget(e)
	return e
}

// CreateRenderer implements fyne.Widget
func (e *EdgeStrip) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(e.bar)
}

// Tapped implements fyne.Tappable
func (e *EdgeStrip) Tapped(*fyne.PointEvent) {
	if e.onTap != nil {
		e.onTap()
	}
}

// Dragged implements fyne.Draggable
func (e *EdgeStrip) Dragged(ev *fyne.DragEvent) {
	if !e.dragging {
		e.dragging = true
		e.dragStartX = ev.Position.X - ev.Dragged.DX
	}
	e.dragEndX = ev.Position.X
}

// DragEnd implements fyne.Draggable
func (e *EdgeStrip) DragEnd() {
	if e.dragging && e.onSwipe != nil {
		e.onSwipe(float64(e.dragStartX), float64(e.dragEndX))
	}
	e.dragging = false
}

// MenuPanel wraps the category list and reports pointer movement over it
// as menu activity
type MenuPanel struct {
	widget.BaseWidget

	content    fyne.CanvasObject
	onActivity func()
}

// NewMenuPanel creates the panel around content
func NewMenuPanel(content fyne.CanvasObject, onActivity func()) *MenuPanel {
	p := &MenuPanel{content: content, onActivity: onActivity}
	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *MenuPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// MouseIn implements desktop.Hoverable
func (p *MenuPanel) MouseIn(*desktop.MouseEvent) {
	p.activity()
}

// MouseMoved implements desktop.Hoverable
func (p *MenuPanel) MouseMoved(*desktop.MouseEvent) {
	p.activity()
}

// MouseOut implements desktop.Hoverable
func (p *MenuPanel) MouseOut() {}

func (p *MenuPanel) activity() {
	if p.onActivity != nil {
		p.onActivity()
	}
}
