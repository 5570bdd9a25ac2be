package abstraction

import (
	"context"
	"fmt"
	"math"

	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/notation"
	"github.com/lox/hunlsolver/poker"
)

// EquityIterations is the fixed Monte-Carlo sample budget used when building
// the live equity vector for a (hand, board) pair (spec §4.2, step 1).
const EquityIterations = 100_000

// Bucketer maps (hole cards, board) to a postflop cluster index in [0,K)
// (spec C4). Implementations must ignore the order cards arrived on the
// board — imperfect recall is part of the abstraction contract (spec §4.2).
type Bucketer interface {
	PostflopBucket(ctx context.Context, hand poker.Hand, board poker.Board) (int, error)
}

// KMeansBucketer is the reference Bucketer: it computes the live 8-D equity
// vector against the fixed range tiers and looks up the nearest trained
// centroid.
type KMeansBucketer struct {
	Centroids  *CentroidTable
	Tiers      *notation.RangeTiers
	Oracle     equity.Oracle
	Iterations int
}

// NewKMeansBucketer builds a bucketer from a trained centroid table, the
// range dictionary, and an equity oracle. Iterations defaults to
// EquityIterations when 0.
func NewKMeansBucketer(centroids *CentroidTable, tiers *notation.RangeTiers, oracle equity.Oracle, iterations int) *KMeansBucketer {
	if iterations <= 0 {
		iterations = EquityIterations
	}
	return &KMeansBucketer{Centroids: centroids, Tiers: tiers, Oracle: oracle, Iterations: iterations}
}

// PostflopBucket implements Bucketer.
func (b *KMeansBucketer) PostflopBucket(ctx context.Context, hand poker.Hand, board poker.Board) (int, error) {
	v, err := EquityVectorFor(ctx, b.Oracle, b.Tiers, hand, board, b.Iterations)
	if err != nil {
		return 0, err
	}
	bucket := b.Centroids.Nearest(v)
	if bucket < 0 || bucket >= b.Centroids.K() {
		return 0, fmt.Errorf("abstraction: bucket %d out of range [0,%d)", bucket, b.Centroids.K())
	}
	return bucket, nil
}

// EquityVectorFor computes the 8-D equity feature vector for a (hand,
// board) pair by invoking the oracle once per range tier (spec §3, §4.2).
// Board cards are sorted by (rank,suit) before the call since the
// abstraction's imperfect recall discards deal order.
func EquityVectorFor(ctx context.Context, oracle equity.Oracle, tiers *notation.RangeTiers, hand poker.Hand, board poker.Board, iterations int) (EquityVector, error) {
	sorted := board.Sorted()
	boardStr := poker.CardsString(sorted)
	handStr := poker.CardsString(hand[:])

	var v EquityVector
	for tier := 0; tier < notation.RangeTierCount; tier++ {
		spec := fmt.Sprintf("%s:%s", handStr, tiers.OpponentSpec(tier))
		result, err := oracle.Calc(ctx, spec, boardStr, "", iterations)
		if err != nil {
			return EquityVector{}, fmt.Errorf("abstraction: equity call for tier %d: %w", tier, err)
		}
		v[tier] = math.Round(100 * result.EV[0])
	}
	return v, nil
}
