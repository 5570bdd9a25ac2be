package solver

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/game"
)

// Epsilon and Beta are the average-strategy sampling constants (spec §4.8,
// reference values).
const (
	Epsilon = 0.05
	Beta    = 1e6
)

// Traverser runs external-sampling MCCFR traversals (spec §4.8) over a
// single game tree, mutating the shared cumulative regret and cumulative
// strategy tables. A Traverser's Rng must not be shared across goroutines;
// the Tables it points at may be (spec §5).
type Traverser struct {
	Regrets    *Table
	Strategies *Table
	Keys       *KeyEncoder
	Eval       equity.Evaluator
	Rng        *rand.Rand
}

// NewTraverser builds a traverser over the given shared tables with its own
// private PRNG.
func NewTraverser(regrets, strategies *Table, keys *KeyEncoder, eval equity.Evaluator, rng *rand.Rand) *Traverser {
	return &Traverser{Regrets: regrets, Strategies: strategies, Keys: keys, Eval: eval, Rng: rng}
}

// Traverse implements traverse(h, i, q) -> ℝ (spec §4.8): i is the traverser,
// q the importance-sampling reach probability accumulated so far.
func (tr *Traverser) Traverse(ctx context.Context, h *game.History, i int, q float64) (float64, error) {
	switch {
	case h.IsTerminal():
		u, err := h.TerminalUtility(tr.Eval)
		if err != nil {
			return 0, err
		}
		return u[i] / q, nil

	case h.IsChance():
		next, err := h.PerformChance()
		if err != nil {
			return 0, err
		}
		return tr.Traverse(ctx, next, i, q)

	case h.IsAction():
		legal, err := h.LegalActions()
		if err != nil {
			return 0, err
		}
		if h.ActivePlayer != i {
			return tr.opponentStep(ctx, h, i, q, legal)
		}
		return tr.traverserStep(ctx, h, i, q, legal)

	default:
		return 0, fmt.Errorf("%w: unknown node type %d", game.ErrInvariantViolation, h.NodeType)
	}
}

// opponentStep implements the "ACTION, opponent to act" branch: accumulate
// into the cumulative strategy, then sample one action and recurse with q
// unchanged.
func (tr *Traverser) opponentStep(ctx context.Context, h *game.History, i int, q float64, legal []game.Action) (float64, error) {
	opponent := h.ActivePlayer
	key, err := tr.Keys.Key(ctx, h, opponent)
	if err != nil {
		return 0, err
	}

	sigma := tr.strategyAt(key, legal)
	for _, a := range legal {
		tr.Strategies.Add(key, a, sigma[a]/q)
	}

	a := sampleAction(tr.Rng, legal, sigma)
	next, err := h.PerformAction(a)
	if err != nil {
		return 0, err
	}
	return tr.Traverse(ctx, next, i, q)
}

// traverserStep implements the "ACTION, traverser to act" branch:
// average-strategy sampling with exploration floor Epsilon, recursing into
// sampled children only, and updating cumulative regret with the
// counterfactual value gap.
func (tr *Traverser) traverserStep(ctx context.Context, h *game.History, i int, q float64, legal []game.Action) (float64, error) {
	key, err := tr.Keys.Key(ctx, h, i)
	if err != nil {
		return 0, err
	}

	sigma := tr.strategyAt(key, legal)
	s := tr.Strategies.Values(key, legal)
	var sigmaSum float64
	for _, a := range legal {
		sigmaSum += s[a]
	}

	v := make(map[game.Action]float64, len(legal))
	for _, a := range legal {
		rho := max(Epsilon, (Beta+s[a])/(Beta+sigmaSum))
		if tr.Rng.Float64() < rho {
			next, err := h.PerformAction(a)
			if err != nil {
				return 0, err
			}
			val, err := tr.Traverse(ctx, next, i, q*min(1, rho))
			if err != nil {
				return 0, err
			}
			v[a] = val
		}
	}

	var ev float64
	for _, a := range legal {
		ev += sigma[a] * v[a]
	}

	for _, a := range legal {
		tr.Regrets.Add(key, a, v[a]-ev)
	}
	return ev, nil
}

func (tr *Traverser) strategyAt(key string, legal []game.Action) map[game.Action]float64 {
	r := tr.Regrets.Values(key, legal)
	return RegretMatchedStrategy(r, legal)
}

// sampleAction draws one action from a (key-ordered) probability
// distribution using a single uniform draw.
func sampleAction(rng *rand.Rand, legal []game.Action, sigma map[game.Action]float64) game.Action {
	x := rng.Float64()
	var cum float64
	for _, a := range legal {
		cum += sigma[a]
		if x < cum {
			return a
		}
	}
	return legal[len(legal)-1]
}
