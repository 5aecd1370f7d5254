package script

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	hiraganaFirst = 'ぁ'
	hiraganaLast  = 'ゖ'
	katakanaFirst = 'ァ'
	katakanaLast  = 'ヶ'
	kanaOffset    = katakanaFirst - hiraganaFirst

	sokuon  = 'っ'
	hatsuon = 'ん'

	voicedMark     = '\u3099'
	semiVoicedMark = '\u309a'
	halfwidthFirst = '\uff61'
	halfwidthLast  = '\uff9f'

	halfwidthVoiced     = '\uff9e'
	halfwidthSemiVoiced = '\uff9f'
)

// Kana is the built-in Transliterator. Romaji follows modified Hepburn.
type Kana struct{}

// NewKana returns the built-in transliterator
func NewKana() Kana {
	return Kana{}
}

// ToKatakana converts hiragana to katakana. Text that is not valid UTF-8
// is returned unchanged by all conversions.
func (Kana) ToKatakana(text string) string {
	if !utf8.ValidString(text) {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= hiraganaFirst && r <= hiraganaLast:
			return r + kanaOffset
		case r == 'ゝ' || r == 'ゞ':
			return r + kanaOffset
		}
		return r
	}, normalizeKana(text))
}

// ToHiragana converts katakana (including half-width forms) to hiragana
func (Kana) ToHiragana(text string) string {
	return toHiragana(text)
}

// ToRomaji converts kana to lower case romaji. Runes without a reading
// are copied through.
func (Kana) ToRomaji(text string) string {
	if text == "" || !utf8.ValidString(text) {
		return text
	}

	rs := []rune(toHiragana(text))
	var b strings.Builder
	for i := 0; i < len(rs); {
		r := rs[i]

		if r == sokuon {
			next, _ := syllable(rs, i+1)
			if next != "" && isConsonant(next[0]) && rs[i+1] != hatsuon {
				b.WriteByte(next[0])
			} else {
				b.WriteRune(r)
			}
			i++
			continue
		}

		if r == hatsuon {
			b.WriteByte('n')
			if next, _ := syllable(rs, i+1); next != "" && (isVowel(next[0]) || next[0] == 'y') {
				b.WriteByte('\'')
			}
			i++
			continue
		}

		if s, n := syllable(rs, i); n > 0 {
			b.WriteString(s)
			i += n
			continue
		}

		b.WriteRune(r)
		i++
	}
	return b.String()
}

func toHiragana(text string) string {
	if !utf8.ValidString(text) {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= katakanaFirst && r <= katakanaLast:
			return r - kanaOffset
		case r == 'ヽ' || r == 'ヾ':
			return r - kanaOffset
		}
		return r
	}, normalizeKana(text))
}

// normalizeKana widens half-width katakana and composes separate voicing
// marks. Text without either is returned untouched.
func normalizeKana(text string) string {
	if !strings.ContainsFunc(text, needsNormalizing) {
		return text
	}

	// Half-width voicing marks become combining marks so NFC can merge
	// them into the preceding kana.
	text = strings.Map(func(r rune) rune {
		switch r {
		case halfwidthVoiced:
			return voicedMark
		case halfwidthSemiVoiced:
			return semiVoicedMark
		}
		return r
	}, text)

	halfwidth := runes.Predicate(isHalfwidthKana)
	t := transform.Chain(runes.If(halfwidth, width.Fold, transform.Nop), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

func needsNormalizing(r rune) bool {
	return isHalfwidthKana(r) || r == voicedMark || r == semiVoicedMark
}

func isHalfwidthKana(r rune) bool {
	return r >= halfwidthFirst && r <= halfwidthLast
}

// syllable returns the romaji for the kana starting at rs[i] and the
// number of runes it consumed, or 0 when rs[i] has no reading.
func syllable(rs []rune, i int) (string, int) {
	if i >= len(rs) {
		return "", 0
	}

	if i+1 < len(rs) {
		if s, ok := digraphs[[2]rune{rs[i], rs[i+1]}]; ok {
			return s, 2
		}
		if prefix, ok := yoonPrefix[rs[i]]; ok {
			if vowel, ok := smallY[rs[i+1]]; ok {
				return prefix + vowel, 2
			}
		}
	}

	if s, ok := monographs[rs[i]]; ok {
		return s, 1
	}
	return "", 0
}

func isVowel(c byte) bool {
	return strings.IndexByte("aeiou", c) >= 0
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}

var monographs = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "wi", 'ゑ': "we", 'を': "wo", 'ん': "n",
	'ゔ': "vu",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo", 'ゎ': "wa", 'ゕ': "ka", 'ゖ': "ke",
	'ー': "-",
}

var yoonPrefix = map[rune]string{
	'き': "ky", 'ぎ': "gy", 'し': "sh", 'じ': "j", 'ち': "ch", 'ぢ': "j",
	'に': "ny", 'ひ': "hy", 'び': "by", 'ぴ': "py", 'み': "my", 'り': "ry",
}

var smallY = map[rune]string{'ゃ': "a", 'ゅ': "u", 'ょ': "o"}

// digraphs covers the extended combinations used to spell loanwords
var digraphs = map[[2]rune]string{
	{'し', 'ぇ'}: "she", {'じ', 'ぇ'}: "je", {'ち', 'ぇ'}: "che",
	{'て', 'ぃ'}: "ti", {'で', 'ぃ'}: "di", {'と', 'ぅ'}: "tu", {'ど', 'ぅ'}: "du",
	{'つ', 'ぁ'}: "tsa", {'つ', 'ぃ'}: "tsi", {'つ', 'ぇ'}: "tse", {'つ', 'ぉ'}: "tso",
	{'ふ', 'ぁ'}: "fa", {'ふ', 'ぃ'}: "fi", {'ふ', 'ぇ'}: "fe", {'ふ', 'ぉ'}: "fo",
	{'ゔ', 'ぁ'}: "va", {'ゔ', 'ぃ'}: "vi", {'ゔ', 'ぇ'}: "ve", {'ゔ', 'ぉ'}: "vo",
	{'う', 'ぃ'}: "wi", {'う', 'ぇ'}: "we", {'う', 'ぉ'}: "wo", {'い', 'ぇ'}: "ye",
}
