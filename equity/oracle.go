package equity

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lox/hunlsolver/notation"
	"github.com/lox/hunlsolver/poker"
)

// Result is the oracle's response to a Calc call (spec §6.2): win
// probabilities for each side, summing to <=1 — the remainder is the tie
// probability, split evenly at showdown.
type Result struct {
	EV [2]float64
}

// Oracle is the equity-oracle external interface: given a hand spec of the
// form "hand:opponent" (either side may be a shorthand range), a partial
// board, and a set of dead cards, estimate each side's win probability.
type Oracle interface {
	Calc(ctx context.Context, handSpec, boardStr, deadStr string, iterations int) (Result, error)
}

// MonteCarloOracle is the reference Oracle implementation: it samples a
// concrete opponent combo from the requested range, completes the board
// uniformly at random from the undealt cards, and tallies wins/ties with an
// Evaluator. Grounded in the teacher's worker-pool equity sampler
// (internal/evaluator/equity.go), simplified to a single-goroutine sampler
// since the solver already parallelizes at the per-table level (spec §5).
type MonteCarloOracle struct {
	Eval Evaluator
	Rng  *rand.Rand
}

// NewMonteCarloOracle builds an oracle with the given reference evaluator
// and a seeded PRNG, matching the solver's deterministic-seeding convention.
func NewMonteCarloOracle(eval Evaluator, seed uint64) *MonteCarloOracle {
	return &MonteCarloOracle{
		Eval: eval,
		Rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Calc implements Oracle.
func (o *MonteCarloOracle) Calc(ctx context.Context, handSpec, boardStr, deadStr string, iterations int) (Result, error) {
	heroSpec, villainSpec, err := splitHandSpec(handSpec)
	if err != nil {
		return Result{}, err
	}
	board, err := poker.ParseCards(boardStr)
	if err != nil {
		return Result{}, fmt.Errorf("equity: invalid board %q: %w", boardStr, err)
	}
	if len(board) > 5 {
		return Result{}, fmt.Errorf("equity: board has %d cards, max 5", len(board))
	}
	dead, err := poker.ParseCards(deadStr)
	if err != nil {
		return Result{}, fmt.Errorf("equity: invalid dead cards %q: %w", deadStr, err)
	}
	if iterations <= 0 {
		return Result{}, fmt.Errorf("equity: iterations must be positive, got %d", iterations)
	}

	known := poker.NewCardSet(board)
	for _, c := range dead {
		known.Add(c)
	}

	heroCombos, err := resolveSide(heroSpec, known)
	if err != nil {
		return Result{}, fmt.Errorf("equity: hero side: %w", err)
	}

	var heroWins, villainWins, ties float64
	for n := 0; n < iterations; n++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		hero := heroCombos[o.Rng.IntN(len(heroCombos))]
		dealt := known
		dealt.Add(hero[0])
		dealt.Add(hero[1])

		villainCombos, err := resolveSide(villainSpec, dealt)
		if err != nil {
			return Result{}, fmt.Errorf("equity: villain side: %w", err)
		}
		if len(villainCombos) == 0 {
			return Result{}, fmt.Errorf("equity: no villain combos remain for %q given dead cards", villainSpec)
		}
		villain := villainCombos[o.Rng.IntN(len(villainCombos))]
		dealt.Add(villain[0])
		dealt.Add(villain[1])

		full, err := completeBoard(o.Rng, board, dealt)
		if err != nil {
			return Result{}, err
		}

		winner, err := Showdown(o.Eval, hero, villain, full)
		if err != nil {
			return Result{}, err
		}
		switch winner {
		case 0:
			heroWins++
		case 1:
			villainWins++
		default:
			ties++
		}
	}

	total := float64(iterations)
	return Result{EV: [2]float64{heroWins / total, villainWins / total}}, nil
}

// splitHandSpec splits "hand:opponent" into its two sides (spec §6.2).
func splitHandSpec(spec string) (hero, villain string, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("equity: hand_spec %q missing ':' separator", spec)
	}
	return parts[0], parts[1], nil
}

// resolveSide parses one side of a hand spec into concrete combos: either a
// single concrete hand ("AhKh") or a shorthand range ("QQ+,AKs").
func resolveSide(spec string, dead poker.CardSet) ([]poker.Hand, error) {
	if cards, err := poker.ParseCards(spec); err == nil && len(cards) == 2 {
		return []poker.Hand{poker.NewHand(cards[0], cards[1])}, nil
	}
	set, err := notation.ParseRangeNotation(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid hand or range %q: %w", spec, err)
	}
	return notation.ExpandRangeSet(set, dead)
}

// completeBoard deals uniformly at random from the 52-card deck, skipping
// any card already known, until the board has 5 cards.
func completeBoard(rng *rand.Rand, partial poker.Board, known poker.CardSet) (poker.Board, error) {
	full := make(poker.Board, len(partial), 5)
	copy(full, partial)

	var undealt []poker.Card
	for id := 0; id < 52; id++ {
		c := poker.Card(id)
		if !known.Contains(c) {
			undealt = append(undealt, c)
		}
	}
	need := 5 - len(full)
	if need > len(undealt) {
		return nil, fmt.Errorf("equity: not enough undealt cards to complete the board")
	}
	rng.Shuffle(len(undealt), func(i, j int) { undealt[i], undealt[j] = undealt[j], undealt[i] })
	full = append(full, undealt[:need]...)
	return full, nil
}
