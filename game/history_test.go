package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/poker"
)

func dealtRoot(t *testing.T, cfg Config, button int, seed uint64) *History {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^1))
	root, err := NewRoot(cfg, poker.NewDeck(rng), button)
	require.NoError(t, err)
	dealt, err := root.PerformChance()
	require.NoError(t, err)
	return dealt
}

func TestChipConservationInvariant(t *testing.T) {
	h := dealtRoot(t, DefaultConfig(), 0, 1)
	require.NoError(t, h.CheckInvariants())
	require.Equal(t, 2*DefaultConfig().StartingStack, h.Stacks[0]+h.Stacks[1]+h.Pot)
}

func TestPreflopFoldIsZeroSum(t *testing.T) {
	h := dealtRoot(t, DefaultConfig(), 0, 2)
	// button (SB) folds immediately.
	legal, err := h.LegalActions()
	require.NoError(t, err)
	require.Contains(t, legal, ActionFold)

	term, err := h.PerformAction(ActionFold)
	require.NoError(t, err)
	require.True(t, term.IsTerminal())

	u, err := term.TerminalUtility(equity.SimpleEvaluator{})
	require.NoError(t, err)
	require.InDelta(t, 0.0, u[0]+u[1], 1e-9)
	// Winner (BB=player 1) gets pot - their own contribution, halved.
	require.InDelta(t, float64(term.Pot-term.Contributions[1])/2, u[1], 1e-9)
}

func TestLimpedFlopResetsContributionsEachStreet(t *testing.T) {
	h := dealtRoot(t, DefaultConfig(), 0, 3)

	h, err := h.PerformAction(ActionCall) // button limps
	require.NoError(t, err)
	require.True(t, h.IsAction())

	h, err = h.PerformAction(ActionCheck) // BB checks, street closes
	require.NoError(t, err)
	require.True(t, h.IsChance())
	require.Equal(t, [2]int{0, 0}, h.Contributions)

	h, err = h.PerformChance() // flop dealt
	require.NoError(t, err)
	require.Len(t, h.Board, 3)
	require.Equal(t, [2]int{0, 0}, h.Contributions)
	require.Equal(t, 1-h.Button, h.ActivePlayer)

	// Flop and turn betting each check through, dealing the next street;
	// river betting checks through straight to TERMINAL.
	for i := 0; i < 2; i++ {
		h, err = h.PerformAction(ActionCheck)
		require.NoError(t, err)
		h, err = h.PerformAction(ActionCheck)
		require.NoError(t, err)
		require.Equal(t, [2]int{0, 0}, h.Contributions)
		require.True(t, h.IsChance())
		h, err = h.PerformChance()
		require.NoError(t, err)
	}
	require.Len(t, h.Board, 5)

	h, err = h.PerformAction(ActionCheck)
	require.NoError(t, err)
	h, err = h.PerformAction(ActionCheck)
	require.NoError(t, err)
	require.True(t, h.IsTerminal())
}

func TestThreeBetReachesRoundCapAndRestrictsActions(t *testing.T) {
	h := dealtRoot(t, DefaultConfig(), 0, 4)

	h, err := h.PerformAction(ActionRaisePot)
	require.NoError(t, err)
	require.Equal(t, 1, h.Round)

	h, err = h.PerformAction(ActionRaisePot)
	require.NoError(t, err)
	require.Equal(t, 2, h.Round)

	legal, err := h.LegalActions()
	require.NoError(t, err)
	require.ElementsMatch(t, []Action{ActionFold, ActionCall}, legal)
}

func TestAllInClampMatchesSpecExample(t *testing.T) {
	h := &History{
		Config:       Config{SmallBlind: 1, BigBlind: 2, StartingStack: 210},
		Button:       0,
		ActivePlayer: 0,
		Street:       2,
		NodeType:     ActionNode,
		Stacks:       [2]int{10, 200},
		Pot:          3,
	}

	amount := h.betAmount(ActionBetPot)
	require.Equal(t, 3, amount)

	allIn := h.betAmount(ActionBetAllIn)
	require.Equal(t, 10, allIn)

	next := h.Clone()
	next.Stacks[0] = 0
	next.Contributions[0] = 10
	next.ActivePlayer = 1
	next.Pot = 13

	legal, err := next.LegalActions()
	require.NoError(t, err)
	require.ElementsMatch(t, []Action{ActionFold, ActionCall}, legal)

	raiseAllIn := next.betAmount(ActionRaiseAllIn)
	require.Equal(t, 10, raiseAllIn)
}

func TestBetSizesClampToRange(t *testing.T) {
	h := &History{
		Config:       Config{SmallBlind: 1, BigBlind: 2, StartingStack: 200},
		ActivePlayer: 0,
		Stacks:       [2]int{200, 200},
		Pot:          10,
	}
	half := h.betAmount(ActionBetHalf)
	require.Equal(t, 5, half)
	pot := h.betAmount(ActionBetPot)
	require.Equal(t, 10, pot)
	allIn := h.betAmount(ActionBetAllIn)
	require.Equal(t, 200, allIn)
}

func TestPerformActionIsPure(t *testing.T) {
	h := dealtRoot(t, DefaultConfig(), 0, 5)
	before := *h
	beforeBoard := append(poker.Board(nil), h.Board...)

	_, err := h.PerformAction(ActionCall)
	require.NoError(t, err)

	require.Equal(t, before.Contributions, h.Contributions)
	require.Equal(t, before.Stacks, h.Stacks)
	require.Equal(t, before.Pot, h.Pot)
	require.Equal(t, beforeBoard, h.Board)
}

func TestZeroSumOverRandomRollouts(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 9))
	eval := equity.SimpleEvaluator{}
	var total float64
	const n = 1000
	for i := 0; i < n; i++ {
		u, err := RandomRollout(DefaultConfig(), eval, rng, i%2)
		require.NoError(t, err)
		total += u[0] + u[1]
	}
	require.Equal(t, 0.0, total)
}

func BenchmarkRandomRollout(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 9))
	eval := equity.SimpleEvaluator{}
	cfg := DefaultConfig()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RandomRollout(cfg, eval, rng, i%2); err != nil {
			b.Fatal(err)
		}
	}
}
