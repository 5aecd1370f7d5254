package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/kanacards/internal/archive"
	"codeberg.org/snonux/kanacards/internal/card"
	"codeberg.org/snonux/kanacards/internal/cli"
	"codeberg.org/snonux/kanacards/internal/deck"
	"codeberg.org/snonux/kanacards/internal/gui"
	"codeberg.org/snonux/kanacards/internal/models"
	"codeberg.org/snonux/kanacards/internal/script"
	"codeberg.org/snonux/kanacards/internal/study"
	"codeberg.org/snonux/kanacards/internal/translation"
	"codeberg.org/snonux/kanacards/internal/tui"
)

// ErrUnknownCategory is returned for a category argument the deck lacks
var ErrUnknownCategory = errors.New("unknown category")

// Processor handles the main application logic
type Processor struct {
	flags      *cli.Flags
	translator *translation.Translator
	fetcher    *deck.Fetcher
	cache      *deck.Cache
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	p := &Processor{
		flags:      flags,
		translator: translation.NewTranslator(cli.GetOpenAIKey()),
	}
	p.translator.SetModel(flags.MeaningModel)
	if flags.Endpoint != "" {
		p.fetcher = deck.NewFetcher(flags.Endpoint, nil, deck.DefaultFetchTimeout)
	}
	return p
}

// SetupLogging installs the default slog logger at the configured level
func SetupLogging(level string, w io.Writer) error {
	lvl, err := cli.ParseLogLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// Close releases the offline cache
func (p *Processor) Close() error {
	if p.cache == nil {
		return nil
	}
	err := p.cache.Close()
	p.cache = nil
	return err
}

// openCache opens the offline cache once. A cache that cannot be opened
// is logged and skipped, the deck can still come from the endpoint.
func (p *Processor) openCache() *deck.Cache {
	if p.cache != nil || p.flags.CachePath == "" {
		return p.cache
	}

	cache, err := deck.OpenCache(p.flags.CachePath)
	if err != nil {
		slog.Warn("Offline cache unavailable", "path", p.flags.CachePath, "error", err)
		return nil
	}
	p.cache = cache
	return cache
}

func (p *Processor) source() *deck.Source {
	src := &deck.Source{
		File:    p.flags.DeckFile,
		Offline: p.flags.Offline,
	}
	// Leave the interfaces nil rather than holding typed nil pointers
	if p.fetcher != nil {
		src.Remote = p.fetcher
	}
	if cache := p.openCache(); cache != nil {
		src.Store = cache
	}
	return src
}

// LoadDeck loads the deck from the configured origins
func (p *Processor) LoadDeck(ctx context.Context) (*deck.Deck, deck.Origin, error) {
	d, origin, err := p.source().Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load deck: %w", err)
	}
	slog.Debug("Deck loaded", "origin", origin, "categories", len(d.Categories), "words", d.Size())
	return d, origin, nil
}

// RefreshDeck downloads the deck from the endpoint and updates the cache
func (p *Processor) RefreshDeck(ctx context.Context) (*deck.Deck, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("%w: no endpoint configured", deck.ErrNoSource)
	}

	d, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if cache := p.openCache(); cache != nil {
		if err := cache.Save(ctx, d, time.Now()); err != nil {
			slog.Warn("Failed to cache deck", "error", err)
		}
	}
	return d, nil
}

// ListCategories prints every category with its word count
func (p *Processor) ListCategories(d *deck.Deck) {
	if len(d.Categories) == 0 {
		fmt.Println("The deck has no categories")
		return
	}
	for _, category := range d.Categories {
		fmt.Printf("%s (%d words)\n", category, len(d.Words[category]))
	}
}

// ExportDeck prints the deck as JSON in the endpoint's format
func (p *Processor) ExportDeck(d *deck.Deck) error {
	data, err := d.JSON()
	if err != nil {
		return fmt.Errorf("failed to encode deck: %w", err)
	}
	_, err = fmt.Println(string(data))
	return err
}

// ArchiveCache moves the offline cache aside
func (p *Processor) ArchiveCache() error {
	if err := p.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}

	path, err := archive.ArchiveCache(p.flags.CachePath)
	if err != nil {
		return err
	}
	fmt.Printf("Archived deck cache to %s\n", path)
	return nil
}

// ListModels prints the chat models usable for meaning lookups
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(cli.GetOpenAIKey())
	return lister.ListAvailableModels(ctx, os.Stdout, p.translator.Model())
}

// NewSession builds the flash card from the flags and starts a session
// with the given categories selected
func (p *Processor) NewSession(d *deck.Deck, categories []string) (*study.Session, error) {
	modes, err := script.ParseModes(p.flags.Modes)
	if err != nil {
		return nil, err
	}

	for _, category := range categories {
		if !d.Has(category) {
			return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownCategory, category, strings.Join(d.Categories, ", "))
		}
	}

	c := card.New(&card.Config{
		Modes:     modes,
		LongPress: p.flags.LongPress,
	})

	session := study.New(d, c, p.flags.Seed)
	session.Select(categories...)
	return session, nil
}

// Run loads the deck and starts the selected front end
func (p *Processor) Run(ctx context.Context, categories []string) error {
	defer p.Close()

	if p.flags.ListModels {
		return p.ListModels(ctx)
	}

	if p.flags.ArchiveCache {
		if err := p.ArchiveCache(); err != nil {
			return err
		}
	}

	d, origin, err := p.LoadDeck(ctx)
	if err != nil {
		return err
	}

	switch {
	case p.flags.ListCategories:
		p.ListCategories(d)
		return nil
	case p.flags.ExportDeck:
		return p.ExportDeck(d)
	}

	session, err := p.NewSession(d, categories)
	if err != nil {
		return err
	}
	slog.Info("Starting study session", "origin", origin, "selected", session.Selected())

	if p.flags.Terminal {
		return p.runTerminal(ctx, session)
	}
	return p.runGUI(session, origin)
}

func (p *Processor) runTerminal(ctx context.Context, session *study.Session) error {
	ui, err := tui.New(&tui.Config{
		Session:     session,
		Translator:  p.translator,
		MenuTimeout: p.flags.MenuTimeout,
	})
	if err != nil {
		return err
	}

	logger, closeLog, err := terminalLogger(p.flags.LogLevel, p.flags.CachePath)
	if err != nil {
		return err
	}
	defer closeLog()

	// Nothing may write to stderr while the terminal UI owns the screen
	previous := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(previous)

	defer session.Card().Close()
	return ui.Run(ctx)
}

// terminalLogPath returns where debug logs go while the terminal UI runs
func terminalLogPath(cachePath string) string {
	dir := os.TempDir()
	if cachePath != "" {
		dir = filepath.Dir(cachePath)
	}
	return filepath.Join(dir, "kanacards.log")
}

// terminalLogger returns the logger used while the terminal UI runs. At
// debug level it appends to the file named by terminalLogPath, otherwise
// all records are dropped.
func terminalLogger(level, cachePath string) (*slog.Logger, func() error, error) {
	lvl, err := cli.ParseLogLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if lvl > slog.LevelDebug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	path := terminalLogPath(cachePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	slog.Info("Writing debug logs to file while the terminal UI runs", "path", path)
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), f.Close, nil
}

func (p *Processor) runGUI(session *study.Session, origin deck.Origin) error {
	config := &gui.Config{
		Session:     session,
		Translator:  p.translator,
		MenuTimeout: p.flags.MenuTimeout,
	}
	// A deck from a file has nothing to refresh
	if origin != deck.OriginFile && p.fetcher != nil && !p.flags.Offline {
		config.Refresh = p.RefreshDeck
	}

	app := gui.New(config)
	app.Run()
	return nil
}
