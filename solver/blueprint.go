package solver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/hunlsolver/game"
)

// blueprintFileVersion bumps whenever the blueprint schema changes.
const blueprintFileVersion = 1

// Blueprint is the final, loadable strategy: the average strategy at every
// visited information set, derived from the cumulative strategy table
// (spec §4.9 applied to S rather than R).
type Blueprint struct {
	Version    int                              `json:"version"`
	Iterations int64                            `json:"iterations"`
	Strategies map[string]map[game.Action]float64 `json:"strategies"`
}

// BuildBlueprint normalises every row of the cumulative strategy table into
// a probability distribution over the actions it recorded.
func BuildBlueprint(iterations int64, strategies *Table) *Blueprint {
	snap := strategies.Snapshot()
	out := make(map[string]map[game.Action]float64, len(snap))
	for key, row := range snap {
		legal := make([]game.Action, 0, len(row))
		for a := range row {
			legal = append(legal, a)
		}
		// The cumulative strategy sum is already non-negative, so the same
		// positive-part normalisation used for regret matching reduces to a
		// plain average here.
		out[key] = RegretMatchedStrategy(row, legal)
	}
	return &Blueprint{Version: blueprintFileVersion, Iterations: iterations, Strategies: out}
}

// Strategy returns the blueprint's distribution at key, or false if the key
// was never visited during training.
func (b *Blueprint) Strategy(key string) (map[game.Action]float64, bool) {
	s, ok := b.Strategies[key]
	return s, ok
}

// Save persists the blueprint as JSON.
func (b *Blueprint) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("solver: marshal blueprint: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("solver: write blueprint: %w", err)
	}
	return nil
}

// LoadBlueprint reads a previously saved blueprint.
func LoadBlueprint(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIOError, path, err)
	}
	var b Blueprint
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("solver: decode blueprint: %w", err)
	}
	return &b, nil
}
