package deck

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/kanacards/internal/batch"
)

// LoadFile reads a deck from disk. The format follows the extension:
// .json and .yaml/.yml hold a mapping of category to word list, anything
// else is read as a plain text word file.
func LoadFile(path string) (*Deck, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read deck file: %w", err)
		}
		d, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil

	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read deck file: %w", err)
		}
		d, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil

	default:
		entries, err := batch.ReadWordFile(path)
		if err != nil {
			return nil, err
		}
		d := New()
		for _, e := range entries {
			d.Add(e.Category, e.Word)
		}
		return d, nil
	}
}

// ParseYAML reads a deck from a YAML mapping of category to word sequence.
// The document is walked as a node tree so category order is kept.
func ParseYAML(data []byte) (*Deck, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}

	d := New()
	if doc.Kind == 0 {
		return d, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of categories", ErrInvalidDeck)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var words []string
		switch value.Kind {
		case yaml.SequenceNode:
			for _, item := range value.Content {
				if item.Kind == yaml.ScalarNode {
					words = append(words, item.Value)
				}
			}
		case yaml.ScalarNode:
			if value.Tag != "!!null" {
				slog.Debug("Skipping deck member that is not a word list", "key", key.Value)
				continue
			}
		default:
			slog.Debug("Skipping deck member that is not a word list", "key", key.Value)
			continue
		}
		d.Add(key.Value, words...)
	}

	return d, nil
}
