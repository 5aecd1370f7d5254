package internal

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Graphemes splits a word into user-perceived characters, so a kana with a
// separate voicing mark or an emoji sequence occupies a single slot
func Graphemes(word string) []string {
	if word == "" {
		return nil
	}

	var chars []string
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		chars = append(chars, g.Str())
	}
	return chars
}

// CleanWords trims every entry and drops the empty ones
func CleanWords(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			result = append(result, w)
		}
	}
	return result
}
