package blackjack

import "strings"

// Hand is an ordered sequence of ranks in draw order. Ranks are only ever
// appended during a round; order matters only to the two-card natural check.
type Hand []Rank

// Sum returns the raw rank sum with every ace counted as 1.
func (h Hand) Sum() int {
	total := 0
	for _, r := range h {
		total += int(r)
	}
	return total
}

// HasUsableAce reports whether the hand holds an ace that can be promoted to
// 11 without busting. At most one ace is ever promoted; any further aces
// always count as 1.
func (h Hand) HasUsableAce() bool {
	hasAce := false
	for _, r := range h {
		if r == RankAce {
			hasAce = true
			break
		}
	}
	return hasAce && h.Sum()+10 <= 21
}

// Total returns the best hand value, promoting one usable ace to 11.
func (h Hand) Total() int {
	if h.HasUsableAce() {
		return h.Sum() + 10
	}
	return h.Sum()
}

// IsBust reports whether the hand's best value exceeds 21.
func (h Hand) IsBust() bool {
	return h.Total() > 21
}

// Score returns the comparison score of the hand: 0 if bust, the best value
// otherwise. A busted hand therefore never beats a standing one, and two
// busted hands push.
func (h Hand) Score() int {
	if h.IsBust() {
		return 0
	}
	return h.Total()
}

// IsNatural reports whether the hand is a natural blackjack: exactly two
// cards, an ace and a ten-value card. Callers must only ask this of a hand
// that has not been hit; a hand that grew past two cards can never count as
// natural again.
func (h Hand) IsNatural() bool {
	if len(h) != 2 {
		return false
	}
	lo, hi := h[0], h[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo == RankAce && hi == RankTen
}

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// String renders the hand like "[A 10 5]".
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, r := range h {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Compare orders two scores: +1 if a beats b, -1 if b beats a, 0 on a push.
func Compare(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
