package internal

import (
	"reflect"
	"testing"
)

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name string
		word string
		want []string
	}{
		{"empty", "", nil},
		{"hiragana", "ねこ", []string{"ね", "こ"}},
		{"combining voicing mark stays with its kana", "か\u3099き", []string{"か\u3099", "き"}},
		{"latin", "cat", []string{"c", "a", "t"}},
		{"small kana is its own slot", "きゃ", []string{"き", "ゃ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Graphemes(tt.word); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Graphemes(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestCleanWords(t *testing.T) {
	got := CleanWords([]string{" ねこ ", "", "  ", "いぬ"})
	want := []string{"ねこ", "いぬ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanWords() = %q, want %q", got, want)
	}
}
