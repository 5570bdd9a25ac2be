package solver

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/game"
	"github.com/lox/hunlsolver/poker"
)

// tinyConfig keeps stacks small so a traversal reaches TERMINAL quickly
// under full all-in sampling.
func tinyConfig() game.Config {
	return game.Config{SmallBlind: 1, BigBlind: 2, StartingStack: 6}
}

func TestTraverseReturnsFiniteUtilityAndMutatesTables(t *testing.T) {
	regrets := NewTable()
	strategies := NewTable()
	keys := NewKeyEncoder(stubBucketer{bucket: 0})
	eval := equity.SimpleEvaluator{}

	for trial := 0; trial < 20; trial++ {
		rng := rand.New(rand.NewPCG(uint64(trial), uint64(trial)^1))
		deck := poker.NewDeck(rng)
		root, err := game.NewRoot(tinyConfig(), deck, trial%2)
		require.NoError(t, err)

		tr := NewTraverser(regrets, strategies, keys, eval, rng)
		v, err := tr.Traverse(context.Background(), root, trial%2, 1.0)
		require.NoError(t, err)
		require.False(t, math.IsNaN(v), "traverse returned NaN")
	}

	require.Greater(t, regrets.Size(), 0)
	require.Greater(t, strategies.Size(), 0)
}

func TestTraverseStrategyAtIsAlwaysAProbabilityDistribution(t *testing.T) {
	regrets := NewTable()
	strategies := NewTable()
	keys := NewKeyEncoder(stubBucketer{bucket: 0})
	eval := equity.SimpleEvaluator{}
	rng := rand.New(rand.NewPCG(5, 7))

	deck := poker.NewDeck(rng)
	root, err := game.NewRoot(tinyConfig(), deck, 0)
	require.NoError(t, err)
	dealt, err := root.PerformChance()
	require.NoError(t, err)

	tr := NewTraverser(regrets, strategies, keys, eval, rng)
	legal, err := dealt.LegalActions()
	require.NoError(t, err)

	sigma := tr.strategyAt("probe-key", legal)
	var sum float64
	for _, a := range legal {
		require.GreaterOrEqual(t, sigma[a], 0.0)
		sum += sigma[a]
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}
