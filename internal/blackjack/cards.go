package blackjack

import "strconv"

// Rank is the blackjack point rank of a drawn card, in [1, 10].
// 1 is an Ace; 10 stands for any of ten, jack, queen, or king.
// Suits never affect scoring and are not modeled.
type Rank int

const (
	// RankAce is the ace, counted as 1 or 11 per the usable-ace rule.
	RankAce Rank = 1
	// RankTen covers the four ten-value ranks (10/J/Q/K).
	RankTen Rank = 10
)

// deckRanks is the composition one standard deck contributes to a shoe:
// ranks 1-9 once each, plus four ten-value cards.
var deckRanks = [...]Rank{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10}

// DeckSize is the number of cards a single deck contributes.
const DeckSize = len(deckRanks)

// String renders a rank for diagnostics: "A" for the ace, the digits otherwise.
func (r Rank) String() string {
	if r == RankAce {
		return "A"
	}
	return strconv.Itoa(int(r))
}
