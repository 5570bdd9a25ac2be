package poker

import "sort"

// Hand is a player's two hole cards.
type Hand [2]Card

// NewHand builds a Hand from two cards.
func NewHand(a, b Card) Hand { return Hand{a, b} }

// Sorted returns the hand's cards ordered by rank descending, ties broken by
// suit — the canonical ordering the preflop abstractor sorts by before
// deriving the shorthand string (spec §4.1).
func (h Hand) Sorted() [2]Card {
	a, b := h[0], h[1]
	if less(a, b) {
		a, b = b, a
	}
	return [2]Card{a, b}
}

func less(a, b Card) bool {
	if a.Rank() != b.Rank() {
		return a.Rank() < b.Rank()
	}
	return a.Suit() < b.Suit()
}

// Board is the ordered community cards revealed so far: 0, 3, 4, or 5 cards.
type Board []Card

// Sorted returns a copy of the board ordered by (rank, suit) ascending. The
// postflop abstractor ignores street order (imperfect recall, spec §4.2), so
// this canonical order is what feeds the equity featurizer and what the
// info-set key derives its board bucket from.
func (b Board) Sorted() Board {
	out := make(Board, len(b))
	copy(out, b)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
