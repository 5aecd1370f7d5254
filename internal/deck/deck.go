package deck

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"codeberg.org/snonux/kanacards/internal"
)

// ErrInvalidDeck is returned when deck data is not an object of word arrays
var ErrInvalidDeck = errors.New("invalid deck")

// Deck holds words grouped by category. Categories keeps the order the
// categories were first seen in.
type Deck struct {
	Categories []string
	Words      map[string][]string
}

// New creates an empty deck
func New() *Deck {
	return &Deck{Words: make(map[string][]string)}
}

// Add appends words to category, creating the category if needed. Blank
// words are dropped.
func (d *Deck) Add(category string, words ...string) {
	if d.Words == nil {
		d.Words = make(map[string][]string)
	}
	if _, ok := d.Words[category]; !ok {
		d.Categories = append(d.Categories, category)
		d.Words[category] = nil
	}
	d.Words[category] = append(d.Words[category], internal.CleanWords(words)...)
}

// Has reports whether category exists
func (d *Deck) Has(category string) bool {
	_, ok := d.Words[category]
	return ok
}

// Lookup returns the words of the given categories flattened in the order
// the categories are given. Unknown categories contribute nothing.
func (d *Deck) Lookup(categories ...string) []string {
	var words []string
	for _, c := range categories {
		words = append(words, d.Words[c]...)
	}
	return words
}

// Size returns the total number of words
func (d *Deck) Size() int {
	n := 0
	for _, words := range d.Words {
		n += len(words)
	}
	return n
}

// Parse reads a deck from a JSON object mapping category names to arrays of
// words. Members that are not arrays, empty strings and non-string entries
// are skipped.
func Parse(data []byte) (*Deck, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDeck)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object of categories", ErrInvalidDeck)
	}

	d := New()
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsArray() {
			slog.Debug("Skipping deck member that is not a word list", "key", key.String())
			return true
		}

		var words []string
		value.ForEach(func(_, w gjson.Result) bool {
			if w.Type == gjson.String {
				words = append(words, w.String())
			}
			return true
		})
		d.Add(key.String(), words...)
		return true
	})

	return d, nil
}

// JSON encodes the deck in the format Parse reads, keeping category order
func (d *Deck) JSON() ([]byte, error) {
	data := []byte(`{}`)
	for _, c := range d.Categories {
		words := d.Words[c]
		if words == nil {
			words = []string{}
		}

		var err error
		data, err = sjson.SetBytes(data, escapePath(c), words)
		if err != nil {
			return nil, fmt.Errorf("failed to encode category %q: %w", c, err)
		}
	}
	return data, nil
}

// escapePath makes a category name a literal sjson path component
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		if r < 0x80 && !isAlnum(byte(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
