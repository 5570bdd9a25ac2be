package solver

import (
	"fmt"
	"time"

	"github.com/lox/hunlsolver/abstraction"
	"github.com/lox/hunlsolver/game"
)

// TrainingConfig groups the recognised training knobs (spec §6.5).
type TrainingConfig struct {
	GameConfig        game.Config
	Seed              uint64
	ParallelTables    int
	CheckpointEvery   int           // iterations between checkpoints (each runs ParallelTables traversals); 0 disables.
	CheckpointPath    string        // base path; "" disables checkpointing.
	RuntimeBudget     time.Duration // wall-clock budget; 0 means unbounded.
	EquityIterations  int
}

// DefaultTrainingConfig mirrors the reference knobs: SB=1, BB=2,
// STARTING_STACK=200, checkpoint_interval=100 traversals, runtime budget
// 28,000s, equity Monte-Carlo iterations 100,000 (spec §6.5).
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		GameConfig:       game.DefaultConfig(),
		Seed:             1,
		ParallelTables:   1,
		CheckpointEvery:  100,
		RuntimeBudget:    28_000 * time.Second,
		EquityIterations: abstraction.EquityIterations,
	}
}

// Validate checks the training configuration is self-consistent.
func (c TrainingConfig) Validate() error {
	if err := c.GameConfig.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if c.ParallelTables < 0 {
		return fmt.Errorf("solver: %w: negative ParallelTables", game.ErrInvalidInput)
	}
	if c.CheckpointEvery < 0 {
		return fmt.Errorf("solver: %w: negative CheckpointEvery", game.ErrInvalidInput)
	}
	if c.EquityIterations <= 0 {
		return fmt.Errorf("solver: %w: EquityIterations must be > 0", game.ErrInvalidInput)
	}
	return nil
}
