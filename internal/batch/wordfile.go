package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultCategory receives words listed before any category header
const DefaultCategory = "words"

// WordEntry is one word and the category it was listed under
type WordEntry struct {
	Category string
	Word     string
}

// ReadWordFile reads words from a plain text deck file.
// Supports formats:
// - Category header: "[animals]" (following bare words go to animals)
// - Bare word: "ねこ" (added to the current category)
// - Inline category: "animals = いぬ"
// Blank lines and lines starting with '#' are ignored.
func ReadWordFile(filename string) ([]WordEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}
	defer f.Close()

	var entries []WordEntry
	current := DefaultCategory

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("%s:%d: unterminated category header %q", filename, lineNo, line)
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return nil, fmt.Errorf("%s:%d: empty category name", filename, lineNo)
			}
			current = name
			continue
		}

		if category, word, ok := strings.Cut(line, "="); ok {
			category = strings.TrimSpace(category)
			word = strings.TrimSpace(word)
			if category == "" || word == "" {
				// Ignore lines with an empty side
				continue
			}
			entries = append(entries, WordEntry{Category: category, Word: word})
			continue
		}

		entries = append(entries, WordEntry{Category: current, Word: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan word file: %w", err)
	}

	return entries, nil
}
