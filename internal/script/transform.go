package script

// Transliterator converts text into each supported script. Implementations
// must be total: text they cannot convert is returned unchanged.
type Transliterator interface {
	ToKatakana(text string) string
	ToHiragana(text string) string
	ToRomaji(text string) string
}

// Transform renders text in the given mode. Unknown modes return the text
// as is.
func Transform(t Transliterator, mode Mode, text string) string {
	if text == "" {
		return ""
	}

	switch mode {
	case Katakana:
		return t.ToKatakana(text)
	case Hiragana:
		return t.ToHiragana(text)
	case Romaji:
		return t.ToRomaji(text)
	default:
		return text
	}
}
