package script

import (
	"fmt"
	"strings"
)

// Mode identifies one script representation of a character
type Mode int

const (
	Katakana Mode = iota
	Hiragana
	Romaji
)

// DefaultModes is the cycle order used when nothing is configured
var DefaultModes = []Mode{Katakana, Hiragana, Romaji}

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case Katakana:
		return "katakana"
	case Hiragana:
		return "hiragana"
	case Romaji:
		return "romaji"
	default:
		return "unknown"
	}
}

// Label returns the human readable name shown next to a slot
func (m Mode) Label() string {
	switch m {
	case Katakana:
		return "Katakana"
	case Hiragana:
		return "Hiragana"
	case Romaji:
		return "Romaji"
	default:
		return "Unknown"
	}
}

// ParseMode parses a mode name such as "hiragana" (case-insensitive)
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "katakana", "kata":
		return Katakana, nil
	case "hiragana", "hira":
		return Hiragana, nil
	case "romaji", "roma", "latin":
		return Romaji, nil
	default:
		return 0, fmt.Errorf("unknown script mode %q", name)
	}
}

// ParseModes parses an ordered list of mode names. An empty list yields
// DefaultModes; repeated modes are rejected.
func ParseModes(names []string) ([]Mode, error) {
	if len(names) == 0 {
		return append([]Mode(nil), DefaultModes...), nil
	}

	seen := make(map[Mode]bool)
	modes := make([]Mode, 0, len(names))
	for _, name := range names {
		m, err := ParseMode(name)
		if err != nil {
			return nil, err
		}
		if seen[m] {
			return nil, fmt.Errorf("script mode %q listed twice", name)
		}
		seen[m] = true
		modes = append(modes, m)
	}
	return modes, nil
}
