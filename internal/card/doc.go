// Package card implements the interactive flash card: one display-mode slot
// per character of the current word, tap gestures that cycle a single slot
// or the whole card, and a long press that asks for the next word.
package card
