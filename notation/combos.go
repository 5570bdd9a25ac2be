package notation

import "github.com/lox/hunlsolver/poker"

// ExpandShorthand returns every concrete 2-card combo matching a 169-shorthand
// hand (e.g. "AKs" -> 4 combos, "AA" -> 6 combos), excluding any combo that
// overlaps a card in dead. Used by the reference equity oracle to sample a
// concrete opponent hand from a shorthand range.
func ExpandShorthand(shorthand string, dead poker.CardSet) ([]poker.Hand, error) {
	hi, lo, suited, err := parseShorthand(shorthand)
	if err != nil {
		return nil, err
	}

	var combos []poker.Hand
	if hi == lo {
		for s1 := poker.Suit(1); s1 <= 4; s1++ {
			for s2 := s1 + 1; s2 <= 4; s2++ {
				c1 := poker.NewCard(poker.Rank(hi), s1)
				c2 := poker.NewCard(poker.Rank(hi), s2)
				if dead.Contains(c1) || dead.Contains(c2) {
					continue
				}
				combos = append(combos, poker.NewHand(c1, c2))
			}
		}
		return combos, nil
	}

	for s1 := poker.Suit(1); s1 <= 4; s1++ {
		for s2 := poker.Suit(1); s2 <= 4; s2++ {
			if suited && s1 != s2 {
				continue
			}
			if !suited && s1 == s2 {
				continue
			}
			c1 := poker.NewCard(poker.Rank(hi), s1)
			c2 := poker.NewCard(poker.Rank(lo), s2)
			if dead.Contains(c1) || dead.Contains(c2) {
				continue
			}
			combos = append(combos, poker.NewHand(c1, c2))
		}
	}
	return combos, nil
}

func parseShorthand(s string) (hi, lo uint8, suited bool, err error) {
	hi, lo, err = parseRankPair(s[:2])
	if err != nil {
		return 0, 0, false, err
	}
	if hi == lo {
		return hi, lo, false, nil
	}
	if len(s) == 3 && s[2] == 's' {
		return hi, lo, true, nil
	}
	return hi, lo, false, nil
}

// ExpandRangeSet expands every shorthand hand in a RangeSet into concrete
// combos, excluding combos that overlap dead.
func ExpandRangeSet(set RangeSet, dead poker.CardSet) ([]poker.Hand, error) {
	var out []poker.Hand
	for shorthand := range set {
		combos, err := ExpandShorthand(shorthand, dead)
		if err != nil {
			return nil, err
		}
		out = append(out, combos...)
	}
	return out, nil
}
