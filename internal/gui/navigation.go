package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// setupKeyboardShortcuts sets up keyboard shortcuts for the application
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		// Digits cycle the matching slot, 1 being the leftmost character
		if r >= '1' && r <= '9' {
			index := int(r - '1')
			if index < a.card.Len() {
				a.onCycleSlot(index)
			}
			return
		}

		switch r {
		case 'n', 'N':
			a.onNext()
		case ' ':
			a.onCycleAll()
		case 'c', 'C':
			a.onToggleCaption()
		case 'm', 'M':
			if !a.meaningBtn.Disabled() {
				a.onLookupMeaning()
			}
		case 'l', 'L':
			a.menu.Toggle()
		case 'r', 'R':
			if a.config.Refresh != nil && !a.refreshBtn.Disabled() {
				a.onRefreshDeck()
			}
		case 'h', 'H', '?':
			a.onShowHotkeys()
		case 'q', 'Q':
			a.window.Close()
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyRight:
			a.onNext()
		case fyne.KeyEscape:
			if a.menu.Visible() {
				a.menu.Toggle()
			}
		}
	})
}

// onShowHotkeys displays a dialog with all available keyboard shortcuts
func (a *Application) onShowHotkeys() {
	hotkeys := `# Keyboard Shortcuts

## Card
**1-9** Cycle one character (katakana, hiragana, romaji)  
**Space** Cycle all characters  
**→/n** Next word  
**c** Show or hide the reading  
**m** Look up the meaning  

## Mouse
**Click a character** Cycle that character  
**Click the background** Cycle all characters  
**Hold for a moment** Next word  

## Categories
**l** Show or hide the category menu  
**Esc** Hide the category menu  
**r** Download the deck again  

## Help
**h** Show hotkeys  
**q** Quit application`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(520, 420))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)

	// Close keys while the dialog is open
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if r == 'c' || r == 'C' || r == 'h' || r == 'H' || r == 'q' || r == 'Q' {
			d.Hide()
		}
	})
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			d.Hide()
		}
	})

	d.SetOnClosed(a.setupKeyboardShortcuts)
	d.Show()
}
