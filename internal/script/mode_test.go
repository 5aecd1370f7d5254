package script

import (
	"reflect"
	"testing"
)

func TestModeLabels(t *testing.T) {
	tests := []struct {
		mode  Mode
		name  string
		label string
	}{
		{Katakana, "katakana", "Katakana"},
		{Hiragana, "hiragana", "Hiragana"},
		{Romaji, "romaji", "Romaji"},
		{Mode(-1), "unknown", "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.name {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.name)
		}
		if got := tt.mode.Label(); got != tt.label {
			t.Errorf("Mode(%d).Label() = %q, want %q", tt.mode, got, tt.label)
		}
	}
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []Mode
		wantErr bool
	}{
		{
			name:  "empty uses defaults",
			input: nil,
			want:  DefaultModes,
		},
		{
			name:  "custom order",
			input: []string{"Romaji", " hiragana "},
			want:  []Mode{Romaji, Hiragana},
		},
		{
			name:  "aliases",
			input: []string{"kata", "hira", "roma"},
			want:  []Mode{Katakana, Hiragana, Romaji},
		},
		{
			name:    "unknown mode",
			input:   []string{"cyrillic"},
			wantErr: true,
		},
		{
			name:    "duplicate mode",
			input:   []string{"romaji", "latin"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseModes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseModesDoesNotAliasDefaults(t *testing.T) {
	got, err := ParseModes(nil)
	if err != nil {
		t.Fatalf("ParseModes failed: %v", err)
	}
	got[0] = Romaji
	if DefaultModes[0] != Katakana {
		t.Error("ParseModes returned a slice sharing DefaultModes storage")
	}
}
