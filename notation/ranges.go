package notation

import "fmt"

// RangeTierCount is the fixed number of opponent ranges (spec §3, §4.4): the
// postflop abstractor's 8-D equity feature vector has one dimension per
// tier, and K-means centroids are trained in that 8-D space.
const RangeTierCount = 8

// defaultRangeTierNotation is the static partition of all 169 preflop hands
// into 8 tiers, transcribed from the reference implementation's
// BUILD_RANGE_DICTIONARY (original_source/setup.py). Bare two-character
// entries like "72" expand to both suited and offsuit combos; entries
// already carrying an "s"/"o" suffix, or pocket pairs, expand to themselves.
var defaultRangeTierNotation = [RangeTierCount]string{
	0: "82o,83o,72,73,74o,62,63,64,65o,52,53,54,42,43,32",
	1: "J2o,J3o,T2,T3o,T4o,T5o,92,93,94,95o,82s,83s,84,85o,74s,75o",
	2: "T3s,T4s,T5s,T6,T7o,T8o,95s,96,97,98,85s,86,87,75s,76,65s",
	3: "22,K2,K3o,K4o,Q2,Q3,Q4,Q5,Q6o,Q7o,J2s,J3s,J4,J5,J6,J7o",
	4: "Q6s,Q7s,Q8,Q9,QTo,QJo,J7s,J8,J9,JT,T7s,T8s,T9",
	5: "33,44,55,K3s,K4s,K5,K6,K7,K8,K9o,A2,A3,A4,A5,A6,A7o,A8o",
	6: "66,77,A7s,A8s,A9,AT,AJ,AQ,AK,K9s,KT,KJ,KQ,QTs,QJs",
	7: "88,99,TT,JJ,QQ,KK,AA",
}

// RangeTiers is the live, possibly-overridden partition of 169 preflop hands
// into 8 range ids. Index 0 is the weakest tier, 7 the strongest, matching
// the ascending-strength convention of the reference dictionary. Changing
// the tiers requires retraining the postflop centroids (spec §4.4).
type RangeTiers struct {
	tiers       [RangeTierCount]RangeSet
	handToTier  map[string]int
}

// DefaultRangeTiers builds the dictionary from the reference partition.
func DefaultRangeTiers() (*RangeTiers, error) {
	return NewRangeTiers(defaultRangeTierNotation)
}

// NewRangeTiers builds a dictionary from 8 range-notation strings, validating
// that the result is a complete partition of all 169 shorthand hands (every
// hand appears in exactly one tier).
func NewRangeTiers(notation [RangeTierCount]string) (*RangeTiers, error) {
	rt := &RangeTiers{handToTier: make(map[string]int, 169)}
	for i, n := range notation {
		set, err := ParseRangeNotation(n)
		if err != nil {
			return nil, fmt.Errorf("notation: range tier %d: %w", i, err)
		}
		rt.tiers[i] = set
		for hand := range set {
			if prior, ok := rt.handToTier[hand]; ok {
				return nil, fmt.Errorf("notation: hand %s assigned to both tier %d and %d", hand, prior, i)
			}
			rt.handToTier[hand] = i
		}
	}
	all := AllPreflopHands()
	if len(rt.handToTier) != len(all) {
		missing := make([]string, 0)
		for _, h := range all {
			if _, ok := rt.handToTier[h]; !ok {
				missing = append(missing, h)
			}
		}
		return nil, fmt.Errorf("notation: range tiers do not partition all 169 hands, missing %v", missing)
	}
	return rt, nil
}

// TierOf returns the range id in [0,8) for a preflop shorthand hand.
func (rt *RangeTiers) TierOf(shorthand string) (int, bool) {
	id, ok := rt.handToTier[shorthand]
	return id, ok
}

// Hands returns the (sorted) shorthand hands assigned to range id.
func (rt *RangeTiers) Hands(rangeID int) []string {
	if rangeID < 0 || rangeID >= RangeTierCount {
		return nil
	}
	return rt.tiers[rangeID].Sorted()
}

// OpponentSpec renders range id as the comma-joined shorthand spec the
// equity oracle interface expects for the opponent side (spec §6.2).
func (rt *RangeTiers) OpponentSpec(rangeID int) string {
	return rt.tiers[rangeID].Join()
}
