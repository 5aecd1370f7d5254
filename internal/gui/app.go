package gui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/kanacards/internal"
	"codeberg.org/snonux/kanacards/internal/card"
	"codeberg.org/snonux/kanacards/internal/clock"
	"codeberg.org/snonux/kanacards/internal/deck"
	"codeberg.org/snonux/kanacards/internal/menu"
	"codeberg.org/snonux/kanacards/internal/study"
	"codeberg.org/snonux/kanacards/internal/translation"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	cardView     *CardView
	captionLabel *widget.Label
	meaningLabel *widget.Label
	statusLabel  *widget.Label
	menuPanel    *MenuPanel
	menuList     *fyne.Container
	edgeStrip    *EdgeStrip
	checks       map[string]*widget.Check

	// Toolbar buttons
	nextBtn    *ttwidget.Button
	cycleBtn   *ttwidget.Button
	captionBtn *ttwidget.Button
	meaningBtn *ttwidget.Button
	menuBtn    *ttwidget.Button
	refreshBtn *ttwidget.Button
	helpBtn    *ttwidget.Button

	// State
	session    *study.Session
	card       *card.FlashCard
	menu       *menu.Menu
	translator *translation.Translator
	config     *Config

	// Background work
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	Session     *study.Session
	Translator  *translation.Translator
	MenuTimeout time.Duration

	// Refresh reloads the deck; the refresh button is hidden when nil
	Refresh func(ctx context.Context) (*deck.Deck, error)
}

// New creates a new GUI application
func New(config *Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.kanacards")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:        myApp,
		session:    config.Session,
		card:       config.Session.Card(),
		menu:       menu.New(clock.New(), config.MenuTimeout),
		translator: config.Translator,
		config:     config,
		checks:     make(map[string]*widget.Check),
		ctx:        ctx,
		cancel:     cancel,
	}

	a.setupUI()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("KanaCards v%s - Japanese Flash Cards", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(900, 600))

	a.cardView = NewCardView(a.card, a.menu.PressOutside)

	a.captionLabel = widget.NewLabel("")
	a.captionLabel.Alignment = fyne.TextAlignCenter
	a.captionLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.meaningLabel = widget.NewLabel("")
	a.meaningLabel.Alignment = fyne.TextAlignCenter
	a.meaningLabel.TextStyle = fyne.TextStyle{Italic: true}

	// Toolbar buttons (tooltips are set after the tooltip layer exists)
	a.nextBtn = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.onNext)
	a.cycleBtn = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onCycleAll)
	a.captionBtn = ttwidget.NewButtonWithIcon("", theme.VisibilityIcon(), a.onToggleCaption)
	a.meaningBtn = ttwidget.NewButtonWithIcon("", theme.SearchIcon(), a.onLookupMeaning)
	a.menuBtn = ttwidget.NewButtonWithIcon("", theme.MenuIcon(), a.menu.Toggle)
	a.refreshBtn = ttwidget.NewButtonWithIcon("", theme.DownloadIcon(), a.onRefreshDeck)
	a.helpBtn = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	if a.translator == nil || !a.translator.Enabled() {
		a.meaningBtn.Disable()
	}
	if a.config.Refresh == nil {
		a.refreshBtn.Hide()
	}

	toolbar := container.NewHBox(
		a.menuBtn,
		widget.NewSeparator(),
		a.nextBtn,
		a.cycleBtn,
		a.captionBtn,
		a.meaningBtn,
		widget.NewSeparator(),
		a.refreshBtn,
		a.helpBtn,
	)

	// Side menu with one check per category
	a.menuList = container.NewVBox()
	title := widget.NewLabel("Categories")
	title.TextStyle = fyne.TextStyle{Bold: true}
	menuScroll := container.NewVScroll(a.menuList)
	menuScroll.SetMinSize(fyne.NewSize(180, 0))
	a.menuPanel = NewMenuPanel(container.NewBorder(title, nil, nil, nil, menuScroll), a.menu.Activity)
	a.edgeStrip = NewEdgeStrip(a.menu.EdgePress, func(startX, endX float64) {
		a.menu.Swipe(startX, endX)
	})
	a.rebuildMenu()

	a.statusLabel = widget.NewLabel("")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	cardSection := container.NewBorder(
		nil,
		container.NewVBox(a.captionLabel, a.meaningLabel),
		nil, nil,
		container.NewPadded(a.cardView),
	)

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		a.statusLabel,
		container.NewHBox(a.menuPanel, a.edgeStrip),
		nil,
		cardSection,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	// Wire state changes to the UI. Callbacks may arrive from timer
	// goroutines, so every widget update goes through fyne.Do.
	a.card.SetOnChange(func() {
		fyne.Do(a.refreshCard)
	})
	a.session.SetOnUpdate(func() {
		fyne.Do(a.refreshSession)
	})
	a.menu.OnVisibilityChange(func(bool) {
		fyne.Do(a.refreshMenuVisibility)
	})

	a.window.SetOnClosed(func() {
		a.menu.Close()
		a.card.Close()
		a.cancel()
		a.wg.Wait()
	})

	// Set up keyboard shortcuts
	a.setupKeyboardShortcuts()

	a.refreshCard()
	a.refreshSession()
	a.refreshMenuVisibility()
}

func (a *Application) setupTooltips() {
	a.nextBtn.SetToolTip("Next word (→/n)")
	a.cycleBtn.SetToolTip("Cycle all characters (space)")
	a.captionBtn.SetToolTip("Show or hide the reading (c)")
	a.meaningBtn.SetToolTip("Look up the meaning (m)")
	a.menuBtn.SetToolTip("Show or hide categories (l)")
	a.refreshBtn.SetToolTip("Download the deck again (r)")
	a.helpBtn.SetToolTip("Show hotkeys (h)")
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// rebuildMenu recreates the category checks from the session
func (a *Application) rebuildMenu() {
	a.checks = make(map[string]*widget.Check)
	a.menuList.RemoveAll()

	categories := a.session.Categories()
	if len(categories) == 0 {
		a.menuList.Add(widget.NewLabel("No categories"))
	}

	for _, category := range categories {
		category := category
		check := widget.NewCheck(category, nil)
		check.SetChecked(a.session.IsSelected(category))
		check.OnChanged = func(checked bool) {
			a.menu.Activity()
			if a.session.IsSelected(category) != checked {
				a.session.Toggle(category)
			}
		}
		a.checks[category] = check
		a.menuList.Add(check)
	}
	a.menuList.Refresh()
}

// refreshCard redraws the card and the caption
func (a *Application) refreshCard() {
	a.cardView.Update()
	a.refreshCaption()
}

func (a *Application) refreshCaption() {
	caption := a.session.Caption()
	a.captionLabel.SetText(caption)
	if caption == "" {
		a.captionBtn.SetIcon(theme.VisibilityIcon())
	} else {
		a.captionBtn.SetIcon(theme.VisibilityOffIcon())
	}
}

// refreshSession updates everything that depends on the word pool
func (a *Application) refreshSession() {
	index, total := a.session.Position()
	if total == 0 {
		a.statusLabel.SetText(fmt.Sprintf("%d categories, none selected", len(a.session.Categories())))
		a.nextBtn.Disable()
		a.cycleBtn.Disable()
	} else {
		a.statusLabel.SetText(fmt.Sprintf("Word %d of %d in %v", index+1, total, a.session.Selected()))
		a.nextBtn.Enable()
		a.cycleBtn.Enable()
	}

	a.meaningLabel.SetText("")

	for category, check := range a.checks {
		if selected := a.session.IsSelected(category); check.Checked != selected {
			check.SetChecked(selected)
		}
	}
	a.refreshCaption()
}

func (a *Application) refreshMenuVisibility() {
	if a.menu.Visible() {
		a.menuPanel.Show()
		a.edgeStrip.Hide()
	} else {
		a.menuPanel.Hide()
		a.edgeStrip.Show()
	}
}

// onNext shows the next word
func (a *Application) onNext() {
	a.session.Next()
}

// onCycleAll switches every slot to the next script
func (a *Application) onCycleAll() {
	a.card.CycleAll()
}

// onCycleSlot cycles one slot, as if it were tapped
func (a *Application) onCycleSlot(index int) {
	a.card.CycleSlot(index)
}

// onToggleCaption shows or hides the whole-word reading
func (a *Application) onToggleCaption() {
	a.session.ToggleCaption()
}

// onLookupMeaning asks the translator for the current word's meaning
func (a *Application) onLookupMeaning() {
	if a.translator == nil || !a.translator.Enabled() {
		return
	}

	word := a.session.Current()
	if word == "" {
		return
	}

	a.meaningLabel.SetText("Looking up...")
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
		defer cancel()

		meaning, err := a.translator.TranslateWord(ctx, word)
		fyne.Do(func() {
			// The word may have changed while waiting
			if a.session.Current() != word {
				return
			}
			if err != nil {
				a.meaningLabel.SetText("")
				dialog.ShowError(fmt.Errorf("meaning lookup failed: %w", err), a.window)
				return
			}
			a.meaningLabel.SetText(meaning)
		})
	}()
}

// onRefreshDeck downloads the deck again and keeps the selection
func (a *Application) onRefreshDeck() {
	if a.config.Refresh == nil {
		return
	}

	a.refreshBtn.Disable()
	a.statusLabel.SetText("Downloading deck...")
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		d, err := a.config.Refresh(a.ctx)
		if err == nil {
			a.session.SetDeck(d)
		}
		fyne.Do(func() {
			a.refreshBtn.Enable()
			if err != nil {
				dialog.ShowError(fmt.Errorf("deck refresh failed: %w", err), a.window)
				a.refreshSession()
				return
			}
			a.rebuildMenu()
			a.refreshSession()
		})
	}()
}
