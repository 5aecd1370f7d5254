// Package study drives a flash card through a shuffled pool of words drawn
// from the selected deck categories.
package study

import (
	"math/rand"
	"slices"
	"sync"
	"time"

	"codeberg.org/snonux/kanacards/internal/card"
	"codeberg.org/snonux/kanacards/internal/deck"
	"codeberg.org/snonux/kanacards/internal/script"
)

// Session holds the selected categories and the shuffled word pool and
// feeds the current word to its card. A long press on the card moves to
// the next word.
type Session struct {
	mu          sync.Mutex
	deck        *deck.Deck
	card        *card.FlashCard
	rng         *rand.Rand
	selected    []string
	pool        []string
	index       int
	showCaption bool
	onUpdate    func()
}

// New creates a session over d that drives c. A zero seed shuffles
// differently on every run.
func New(d *deck.Deck, c *card.FlashCard, seed int64) *Session {
	if d == nil {
		d = deck.New()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		deck: d,
		card: c,
		rng:  rand.New(rand.NewSource(seed)),
	}
	c.SetOnNext(s.Next)
	c.SetWord("")
	return s
}

// SetOnUpdate sets a callback run after the word, selection or caption changed
func (s *Session) SetOnUpdate(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = f
}

// Card returns the card the session drives
func (s *Session) Card() *card.FlashCard {
	return s.card
}

// Categories returns all deck categories in deck order
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.deck.Categories)
}

// Selected returns the selected categories in the order they were selected
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selected)
}

// IsSelected reports whether category is selected
func (s *Session) IsSelected(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.selected, category)
}

// Toggle selects or deselects category and reshuffles the pool. It returns
// whether the category is selected afterwards. Unknown categories are ignored.
func (s *Session) Toggle(category string) bool {
	s.mu.Lock()
	if !s.deck.Has(category) {
		s.mu.Unlock()
		return false
	}

	selected := true
	if i := slices.Index(s.selected, category); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		selected = false
	} else {
		s.selected = append(s.selected, category)
	}
	word := s.rebuild()
	s.mu.Unlock()

	s.show(word)
	return selected
}

// Select replaces the selection with categories, keeping their order.
// Unknown and repeated categories are skipped.
func (s *Session) Select(categories ...string) {
	s.mu.Lock()
	s.selected = s.selected[:0]
	for _, c := range categories {
		if s.deck.Has(c) && !slices.Contains(s.selected, c) {
			s.selected = append(s.selected, c)
		}
	}
	word := s.rebuild()
	s.mu.Unlock()

	s.show(word)
}

// SetDeck swaps in a refreshed deck. Selected categories that no longer
// exist are dropped.
func (s *Session) SetDeck(d *deck.Deck) {
	s.mu.Lock()
	s.deck = d
	s.selected = slices.DeleteFunc(s.selected, func(c string) bool { return !d.Has(c) })
	word := s.rebuild()
	s.mu.Unlock()

	s.show(word)
}

// Next moves to the next word in the pool, wrapping at the end, and hides
// the caption.
func (s *Session) Next() {
	s.mu.Lock()
	s.showCaption = false
	if len(s.pool) == 0 {
		s.mu.Unlock()
		return
	}
	s.index = (s.index + 1) % len(s.pool)
	word := s.pool[s.index]
	s.mu.Unlock()

	s.show(word)
}

// Current returns the word on the card, or "" when the pool is empty
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pool) == 0 {
		return ""
	}
	return s.pool[s.index]
}

// Position returns the zero based index of the current word and the pool size
func (s *Session) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index, len(s.pool)
}

// ToggleCaption shows or hides the whole-word reading
func (s *Session) ToggleCaption() bool {
	s.mu.Lock()
	s.showCaption = !s.showCaption
	shown := s.showCaption
	onUpdate := s.onUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate()
	}
	return shown
}

// CaptionShown reports whether the caption is visible
func (s *Session) CaptionShown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showCaption
}

// Caption returns the reading of the whole word in the last mode of the
// card's cycle, or "" while the caption is hidden.
func (s *Session) Caption() string {
	if !s.CaptionShown() {
		return ""
	}

	modes := s.card.Modes()
	mode := script.Romaji
	if len(modes) > 0 {
		mode = modes[len(modes)-1]
	}
	return s.card.Reading(mode)
}

// rebuild must be called with s.mu held. It returns the first word of the
// new pool.
func (s *Session) rebuild() string {
	s.pool = s.deck.Lookup(s.selected...)
	s.rng.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})
	s.index = 0
	s.showCaption = false

	if len(s.pool) == 0 {
		return ""
	}
	return s.pool[0]
}

func (s *Session) show(word string) {
	s.card.SetWord(word)

	s.mu.Lock()
	onUpdate := s.onUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate()
	}
}
