package solver

import (
	"context"
	"fmt"

	"github.com/lox/hunlsolver/abstraction"
	"github.com/lox/hunlsolver/game"
	"github.com/lox/hunlsolver/notation"
)

// KeyEncoder computes the information-set string key from a given player's
// vantage point (spec §4.7). Preflop, hand_board is the 169-shorthand
// bucket of the viewpoint player's hole cards; once a board exists it is the
// postflop cluster bucket id. The opponent's hole cards never enter the key.
type KeyEncoder struct {
	Bucketer abstraction.Bucketer
}

// NewKeyEncoder builds an encoder backed by the given postflop bucketer.
func NewKeyEncoder(b abstraction.Bucketer) *KeyEncoder {
	return &KeyEncoder{Bucketer: b}
}

// Key renders the exact spec §4.7 string form:
//
//	"H:{hand_board},S:{street},D:{1 if button==p else 0}, INFO:{pot},{stacks[p]},{stacks[1−p]},{contributions[p]},{contributions[1−p]},{action_log}"
func (e *KeyEncoder) Key(ctx context.Context, h *game.History, p int) (string, error) {
	handBoard, err := e.handBoard(ctx, h, p)
	if err != nil {
		return "", err
	}

	o := 1 - p
	dealer := 0
	if h.Button == p {
		dealer = 1
	}

	return fmt.Sprintf(
		"H:%s,S:%d,D:%d, INFO:%d,%d,%d,%d,%d,%s",
		handBoard, h.Street, dealer,
		h.Pot, h.Stacks[p], h.Stacks[o], h.Contributions[p], h.Contributions[o], h.Log,
	), nil
}

func (e *KeyEncoder) handBoard(ctx context.Context, h *game.History, p int) (string, error) {
	if len(h.Board) == 0 {
		return notation.Preflop(h.Hands[p]), nil
	}
	bucket, err := e.Bucketer.PostflopBucket(ctx, h.Hands[p], h.Board)
	if err != nil {
		return "", fmt.Errorf("solver: postflop bucket: %w", err)
	}
	return fmt.Sprintf("%d", bucket), nil
}
