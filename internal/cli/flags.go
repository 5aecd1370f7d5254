package cli

import (
	"time"

	"codeberg.org/snonux/kanacards/internal/card"
	"codeberg.org/snonux/kanacards/internal/menu"
	"codeberg.org/snonux/kanacards/internal/translation"
)

// DefaultEndpoint serves the shared kana word sheet as JSON
const DefaultEndpoint = "https://script.google.com/macros/s/AKfycbyKeLFla2mIBQEBQCCwoXJdFQ9QvEBeV9mRQh3RY6RLyzOAexNHceRgWGvZJwMLr-iK/exec"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile        string
	LogLevel       string
	Terminal       bool
	ListCategories bool
	ExportDeck     bool
	ArchiveCache   bool
	ListModels     bool

	// Deck flags
	DeckFile  string
	Endpoint  string
	CachePath string
	Offline   bool

	// Card flags
	Modes       []string
	LongPress   time.Duration
	MenuTimeout time.Duration
	Seed        int64

	// Meaning lookup flags
	MeaningModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:    "info",
		Endpoint:    DefaultEndpoint,
		Modes:       []string{"katakana", "hiragana", "romaji"},
		LongPress:   card.DefaultLongPress,
		MenuTimeout: menu.DefaultTimeout,

		MeaningModel: translation.DefaultModel,
	}
}
