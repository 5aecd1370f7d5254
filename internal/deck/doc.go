// Package deck loads the word lists the flash cards are drawn from.
//
// A deck maps category names to words and remembers the order in which the
// categories appeared. Decks come from a local file (JSON, YAML or the plain
// text format read by package batch), from a remote JSON endpoint, or from
// the SQLite cache that keeps the last successful remote fetch for offline
// use. Source combines the three.
package deck
