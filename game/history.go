package game

import (
	"fmt"

	"github.com/lox/hunlsolver/equity"
	"github.com/lox/hunlsolver/poker"
)

// NodeType tags the three-valued state of a History: no runtime polymorphism
// is needed for this, a tagged variant is enough (spec §9).
type NodeType uint8

const (
	Chance NodeType = iota
	ActionNode
	Terminal
)

func (t NodeType) String() string {
	switch t {
	case Chance:
		return "chance"
	case ActionNode:
		return "action"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// History is the full game state at one node of the tree (spec §3). Every
// mutating method returns a new *History and leaves the receiver untouched —
// perform_action is pure with respect to the receiver (spec §9, invariant
// 11) — achieved here by a full clone up front rather than an undo log,
// matching the reference's deep-copy-per-action contract.
type History struct {
	Config Config

	Button       int
	ActivePlayer int
	Street       int
	NodeType     NodeType
	Round        int

	Board poker.Board
	Hands [2]poker.Hand

	Stacks        [2]int
	Contributions [2]int
	Pot           int

	Log string

	LastAction Action
	LastActor  int

	deck *poker.Deck
}

// NewRoot builds the root history of a hand: a CHANCE node at street 0,
// awaiting the initial hole-card deal and blind posting.
func NewRoot(cfg Config, deck *poker.Deck, button int) (*History, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if button != 0 && button != 1 {
		return nil, fmt.Errorf("%w: button must be 0 or 1, got %d", ErrInvalidInput, button)
	}
	return &History{
		Config:       cfg,
		Button:       button,
		ActivePlayer: -1,
		Street:       0,
		NodeType:     Chance,
		Stacks:       [2]int{cfg.StartingStack, cfg.StartingStack},
		deck:         deck,
		LastActor:    -1,
	}, nil
}

// Clone deep-copies the history, including its own board slice and a
// detached view of the deck so later deals on the clone never mutate the
// original's remaining cards.
func (h *History) Clone() *History {
	next := *h
	if h.Board != nil {
		next.Board = append(poker.Board(nil), h.Board...)
	}
	if h.deck != nil {
		next.deck = h.deck.Clone()
	}
	return &next
}

// CheckInvariants validates the universal invariants from spec §8 that hold
// at every reachable history. Callers treat a violation as a programming
// error (spec §7), not a recoverable condition.
func (h *History) CheckInvariants() error {
	if h.Stacks[0]+h.Stacks[1]+h.Pot != 2*h.Config.StartingStack {
		return fmt.Errorf("%w: stacks %v + pot %d != 2*%d", ErrInvariantViolation, h.Stacks, h.Pot, h.Config.StartingStack)
	}
	if h.Round < 0 || h.Round > 2 {
		return fmt.Errorf("%w: round %d out of [0,2]", ErrInvariantViolation, h.Round)
	}
	if h.Street < 0 || h.Street > 4 {
		return fmt.Errorf("%w: street %d out of [0,4]", ErrInvariantViolation, h.Street)
	}
	switch len(h.Board) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("%w: board has %d cards", ErrInvariantViolation, len(h.Board))
	}
	return nil
}

// IsChance, IsAction, IsTerminal mirror the reference's node-type predicates.
func (h *History) IsChance() bool   { return h.NodeType == Chance }
func (h *History) IsAction() bool   { return h.NodeType == ActionNode }
func (h *History) IsTerminal() bool { return h.NodeType == Terminal }

// PerformChance advances a CHANCE node by dealing the cards appropriate to
// the current street and posting blinds on the very first deal (spec
// §4.6). The resulting history is always an ACTION node — HUNL never has
// two consecutive chance nodes.
func (h *History) PerformChance() (*History, error) {
	if h.NodeType != Chance {
		return nil, fmt.Errorf("%w: perform_chance called on a %s node", ErrInvalidInput, h.NodeType)
	}
	next := h.Clone()

	switch h.Street {
	case 0:
		p0 := next.deck.Deal(2)
		p1 := next.deck.Deal(2)
		next.Hands[0] = poker.NewHand(p0[0], p0[1])
		next.Hands[1] = poker.NewHand(p1[0], p1[1])

		next.Contributions[next.Button] = next.Config.SmallBlind
		next.Contributions[1-next.Button] = next.Config.BigBlind
		next.Stacks[next.Button] -= next.Config.SmallBlind
		next.Stacks[1-next.Button] -= next.Config.BigBlind
		next.Pot = next.Config.SmallBlind + next.Config.BigBlind

		next.Street = 1
		next.NodeType = ActionNode
		next.ActivePlayer = next.Button
	case 2:
		next.Board = append(next.Board, next.deck.Deal(3)...)
		next.NodeType = ActionNode
	case 3, 4:
		next.Board = append(next.Board, next.deck.Deal(1)...)
		next.NodeType = ActionNode
	default:
		return nil, fmt.Errorf("%w: no chance transition defined for street %d", ErrInvariantViolation, h.Street)
	}
	return next, next.CheckInvariants()
}

// LegalActions enumerates the action alphabet subset legal at an ACTION
// node (spec §4.5). The result is always non-empty (spec §8, invariant 3).
func (h *History) LegalActions() ([]Action, error) {
	if h.NodeType != ActionNode {
		return nil, fmt.Errorf("%w: legal_actions requested on a %s node", ErrInvalidInput, h.NodeType)
	}
	p, o := h.ActivePlayer, 1-h.ActivePlayer
	prevBet := absInt(h.Contributions[p] - h.Contributions[o])

	switch {
	case h.Stacks[p] == 0:
		return []Action{ActionCheck}, nil
	case h.Stacks[o] == 0:
		if prevBet > 0 {
			return []Action{ActionFold, ActionCall}, nil
		}
		return []Action{ActionCheck}, nil
	case h.Round == 2:
		return []Action{ActionFold, ActionCall}, nil
	case prevBet > 0:
		return []Action{ActionFold, ActionCall, ActionRaisePot, ActionRaiseAllIn}, nil
	default:
		return []Action{ActionCheck, ActionBetHalf, ActionBetPot, ActionBetAllIn}, nil
	}
}

func isLegal(a Action, legal []Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}

// betAmount resolves the incremental chip amount a bet/raise action commits
// this turn, per the clamp formulas in spec §4.5.
func (h *History) betAmount(a Action) int {
	p, o := h.ActivePlayer, 1-h.ActivePlayer
	prevBet := absInt(h.Contributions[p] - h.Contributions[o])
	minBet := maxInt(h.Config.BigBlind, prevBet)
	maxBet := minInt(h.Stacks[p], h.Stacks[o]+prevBet)

	switch a.sizingCode() {
	case 'H':
		return clampInt(h.Pot/2, minBet, maxBet)
	case 'P':
		return clampInt(h.Pot+2*prevBet, minBet, maxBet)
	case 'A':
		return maxBet
	default:
		return 0
	}
}

// PerformAction applies an action edge to an ACTION node, returning the
// successor history. The receiver is left untouched (spec §9).
func (h *History) PerformAction(a Action) (*History, error) {
	if h.NodeType != ActionNode {
		return nil, fmt.Errorf("%w: perform_action called on a %s node", ErrInvalidInput, h.NodeType)
	}
	legal, err := h.LegalActions()
	if err != nil {
		return nil, err
	}
	if !isLegal(a, legal) {
		return nil, fmt.Errorf("%w: action %s not legal, have %v", ErrInvalidInput, a, legal)
	}

	next := h.Clone()
	p, o := h.ActivePlayer, 1-h.ActivePlayer
	next.LastAction = a
	next.LastActor = p
	next.Log = h.Log + fmt.Sprintf("%d~%s,", p, a)

	switch {
	case a == ActionFold:
		next.NodeType = Terminal

	case a == ActionCheck:
		switch {
		case h.Street == 1:
			// Preflop CK is only ever legal for the big blind facing no
			// raise (the button always sees a nonzero prevBet here); it
			// always closes the street.
			next.closeStreet()
		case p == h.Button:
			next.closeStreet()
		default:
			next.ActivePlayer = o
			next.NodeType = ActionNode
		}

	case a == ActionCall:
		prevBet := absInt(h.Contributions[p] - h.Contributions[o])
		next.Stacks[p] -= prevBet
		next.Contributions[p] += prevBet
		next.Pot += prevBet
		if next.Contributions[0] != next.Contributions[1] {
			return nil, fmt.Errorf("%w: contributions %v unequal after call", ErrInvariantViolation, next.Contributions)
		}
		if h.Street == 1 && p == h.Button && h.Round == 0 {
			// Preflop limp: the big blind still gets to act.
			next.ActivePlayer = o
			next.NodeType = ActionNode
		} else {
			next.closeStreet()
		}

	case a.isBet():
		amount := h.betAmount(a)
		next.Stacks[p] -= amount
		next.Contributions[p] += amount
		next.Pot += amount
		next.Round++
		next.ActivePlayer = o
		next.NodeType = ActionNode

	default:
		return nil, fmt.Errorf("%w: unrecognized action %s", ErrInvalidInput, a)
	}

	return next, next.CheckInvariants()
}

// closeStreet applies the street-advance side effect (spec §4.6): clears
// contributions, resets round, hands the action to the out-of-position
// player, and deals the next street via a CHANCE node — or, if the river
// just closed, goes directly to TERMINAL.
func (h *History) closeStreet() {
	if h.Street >= 4 {
		h.NodeType = Terminal
		return
	}
	h.Contributions = [2]int{0, 0}
	h.Round = 0
	h.Street++
	h.NodeType = Chance
	h.ActivePlayer = 1 - h.Button
}

// TerminalUtility computes the zero-sum payout at a TERMINAL node (spec
// §4.6.1). A fold pays the winner half of (pot minus the winner's own
// current-street contribution) and charges the folder the same; a showdown
// invokes the evaluator oracle, pays the winner half the pot and charges the
// loser the same, with ties paying nothing.
func (h *History) TerminalUtility(eval equity.Evaluator) ([2]float64, error) {
	if h.NodeType != Terminal {
		return [2]float64{}, fmt.Errorf("%w: terminal_utility requested on a %s node", ErrInvalidInput, h.NodeType)
	}

	if h.LastAction == ActionFold {
		f := h.LastActor
		w := 1 - f
		win := float64(h.Pot-h.Contributions[w]) / 2
		var u [2]float64
		u[w] = win
		u[f] = -win
		return u, nil
	}

	if h.LastAction != ActionCheck && h.LastAction != ActionCall {
		return [2]float64{}, fmt.Errorf("%w: terminal reached via %s, expected F/CK/CL", ErrInvariantViolation, h.LastAction)
	}
	if len(h.Board) != 5 {
		return [2]float64{}, fmt.Errorf("%w: showdown requires a 5-card board, have %d", ErrInvariantViolation, len(h.Board))
	}

	winner, err := equity.Showdown(eval, h.Hands[0], h.Hands[1], h.Board)
	if err != nil {
		return [2]float64{}, err
	}
	half := float64(h.Pot) / 2
	switch winner {
	case 0:
		return [2]float64{half, -half}, nil
	case 1:
		return [2]float64{-half, half}, nil
	default:
		return [2]float64{0, 0}, nil
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
