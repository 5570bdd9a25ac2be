// Package notation implements the 169-hand preflop shorthand (spec §4.1),
// range-string parsing ("AKs", "QQ+", "A5s-A2s"), and the fixed 8-tier range
// dictionary (spec §4.4) used by the postflop abstractor's equity featurizer.
package notation

import (
	"fmt"

	"github.com/lox/hunlsolver/poker"
)

const rankChars = "??23456789TJQKA"

// Preflop maps two hole cards to one of the 169 canonical shorthand strings:
// pocket pairs are the rank twice ("AA"); non-pairs are the higher rank then
// the lower, suffixed "s" for suited or "o" for offsuit ("AKs", "AKo").
func Preflop(hand poker.Hand) string {
	sorted := hand.Sorted()
	hi, lo := sorted[0], sorted[1]

	hiChar := rankChars[hi.Rank()]
	loChar := rankChars[lo.Rank()]

	if hi.Rank() == lo.Rank() {
		return fmt.Sprintf("%c%c", hiChar, loChar)
	}
	if hi.Suit() == lo.Suit() {
		return fmt.Sprintf("%c%cs", hiChar, loChar)
	}
	return fmt.Sprintf("%c%co", hiChar, loChar)
}

// AllPreflopHands enumerates all 169 canonical shorthand strings, used by
// range-dictionary validation and by tests asserting the abstractor's image
// size (spec §8, invariant 5).
func AllPreflopHands() []string {
	out := make([]string, 0, 169)
	for hi := poker.Ace; hi >= poker.Two; hi-- {
		for lo := hi; lo >= poker.Two; lo-- {
			hiChar := rankChars[hi]
			loChar := rankChars[lo]
			if hi == lo {
				out = append(out, fmt.Sprintf("%c%c", hiChar, loChar))
				continue
			}
			out = append(out, fmt.Sprintf("%c%cs", hiChar, loChar))
			out = append(out, fmt.Sprintf("%c%co", hiChar, loChar))
		}
	}
	return out
}
