// Package script converts Japanese text between the scripts a flash card
// can display: Katakana, Hiragana and Romaji. Conversion goes through a
// Transliterator so the card logic can be tested with any implementation.
package script
