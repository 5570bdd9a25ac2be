package abstraction

import (
	"context"

	"github.com/lox/hunlsolver/poker"
)

// Combo is a single (hand, board) training point for the offline k-means
// pipeline (spec §4.3, step 1).
type Combo struct {
	Hand  poker.Hand
	Board poker.Board
}

// GenerateCombos streams (hand, board) pairs where hand ranges over
// C(52,2), board ranges over C(52,3) ∪ C(52,4), and hand∩board=∅ (spec
// §4.3, step 1). The full enumeration is in the hundreds of millions of
// points; emit stops early once limit combos have been produced, matching
// the reference pipeline's subsequent random subsampling (spec §4.3, step
// 3) — callers that want the genuine full enumeration pass a very large
// limit and accept the cost.
func GenerateCombos(ctx context.Context, limit int, emit func(Combo) error) error {
	emitted := 0
	for h1 := 0; h1 < 52 && emitted < limit; h1++ {
		for h2 := h1 + 1; h2 < 52 && emitted < limit; h2++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			hand := poker.NewHand(poker.Card(h1), poker.Card(h2))
			var dead poker.CardSet
			dead.Add(poker.Card(h1))
			dead.Add(poker.Card(h2))

			for _, boardSize := range [2]int{3, 4} {
				err := forEachCombo(boardSize, dead, func(ids []int) error {
					if emitted >= limit {
						return errStop
					}
					board := make(poker.Board, boardSize)
					for i, id := range ids {
						board[i] = poker.Card(id)
					}
					emitted++
					return emit(Combo{Hand: hand, Board: board})
				})
				if err != nil && err != errStop {
					return err
				}
				if emitted >= limit {
					return nil
				}
			}
		}
	}
	return nil
}

var errStop = errStopType{}

type errStopType struct{}

func (errStopType) Error() string { return "abstraction: combo limit reached" }

// forEachCombo enumerates every k-card combination of the 52-card deck that
// excludes any card in dead, calling fn with the chosen card ids in
// ascending order. fn may return errStop to halt enumeration early.
func forEachCombo(k int, dead poker.CardSet, fn func(ids []int) error) error {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if comboIsLive(idx, dead) {
			ids := append([]int(nil), idx...)
			if err := fn(ids); err != nil {
				return err
			}
		}

		i := k - 1
		for i >= 0 && idx[i] == i+52-k {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func comboIsLive(ids []int, dead poker.CardSet) bool {
	for _, id := range ids {
		if dead.Contains(poker.Card(id)) {
			return false
		}
	}
	return true
}
