package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/poker"
)

// RandomRollout plays a single hand to completion choosing uniformly at
// random among legal actions at every decision node, dealing from a freshly
// shuffled deck. It is grounded in the reference implementation's own
// zero-sum smoke test (original_source/mechanics.py's random-rollout check)
// and exists to drive the zero-sum property over many independent hands
// (spec §8, scenario S6) without depending on the solver's regret tables.
func RandomRollout(cfg Config, eval equity.Evaluator, rng *rand.Rand, button int) ([2]float64, error) {
	h, err := NewRoot(cfg, poker.NewDeck(rng), button)
	if err != nil {
		return [2]float64{}, err
	}

	for {
		switch h.NodeType {
		case Terminal:
			return h.TerminalUtility(eval)
		case Chance:
			h, err = h.PerformChance()
			if err != nil {
				return [2]float64{}, err
			}
		case ActionNode:
			legal, err := h.LegalActions()
			if err != nil {
				return [2]float64{}, err
			}
			if len(legal) == 0 {
				return [2]float64{}, fmt.Errorf("%w: no legal actions at action node", ErrInvariantViolation)
			}
			a := legal[rng.IntN(len(legal))]
			h, err = h.PerformAction(a)
			if err != nil {
				return [2]float64{}, err
			}
		default:
			return [2]float64{}, fmt.Errorf("%w: unknown node type %d", ErrInvariantViolation, h.NodeType)
		}
	}
}
