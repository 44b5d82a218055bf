package blackjack

import "github.com/MJE43/blackjack-table-go/internal/engine"

// lowWaterMark is the remaining-card threshold at or below which the shoe is
// rebuilt to a full fresh fill before the next draw. The threshold and the
// refill granularity are part of the game's statistical behavior and must not
// be tuned.
const lowWaterMark = 15

// DefaultDecks is the number of standard decks shuffled into a fresh shoe.
const DefaultDecks = 3

// Shoe is the bag of cards the table draws from, modeling several physical
// decks shuffled together. There is no discard pile: cards leave on draw and
// come back only via the bulk low-water refill.
type Shoe struct {
	cards Deck
	decks int
}

// Deck is the mutable multiset backing a shoe, kept as a plain slice so a
// uniform index pick is a uniform card pick.
type Deck []Rank

// NewShoe builds a shoe with a fresh n-deck fill. Non-positive n falls back
// to DefaultDecks.
func NewShoe(n int) *Shoe {
	if n <= 0 {
		n = DefaultDecks
	}
	return &Shoe{cards: freshFill(n), decks: n}
}

// freshFill builds the canonical n-deck multiset.
func freshFill(n int) Deck {
	cards := make(Deck, 0, n*DeckSize)
	for i := 0; i < n; i++ {
		cards = append(cards, deckRanks[:]...)
	}
	return cards
}

// Draw removes and returns one uniformly random card. When the remaining
// count is at or below the low-water mark the shoe is refilled first, so a
// draw never fails and the shoe never empties mid-round.
func (s *Shoe) Draw(rng *engine.RNG) Rank {
	if len(s.cards) <= lowWaterMark {
		s.cards = freshFill(s.decks)
	}
	idx := rng.IntN(len(s.cards))
	card := s.cards[idx]
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	return card
}

// Remaining returns the number of cards left before the next refill.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Decks returns the fill size in decks.
func (s *Shoe) Decks() int {
	return s.decks
}

// Cards returns a copy of the current composition.
func (s *Shoe) Cards() Deck {
	out := make(Deck, len(s.cards))
	copy(out, s.cards)
	return out
}

// Clone returns an independent deep copy, so mutating the live shoe cannot
// affect a snapshot taken earlier.
func (s *Shoe) Clone() *Shoe {
	return &Shoe{cards: s.Cards(), decks: s.decks}
}

// restore replaces the composition wholesale. Used by snapshot restore.
func (s *Shoe) restore(cards Deck, decks int) {
	if decks <= 0 {
		decks = DefaultDecks
	}
	s.cards = make(Deck, len(cards))
	copy(s.cards, cards)
	s.decks = decks
}
