package solver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hunlsolver/equity"
)

func TestAlternationFlipsTraverserAndButtonEveryIteration(t *testing.T) {
	for iter := int64(0); iter < 6; iter++ {
		traverser, button := alternation(iter)
		want := int(iter % 2)
		require.Equal(t, want, traverser, "traverser at iteration %d", iter)
		require.Equal(t, want, button, "button at iteration %d", iter)
	}
}

func TestTrainerRunCompletesFixedIterationCount(t *testing.T) {
	cfg := TrainingConfig{
		GameConfig:       tinyConfig(),
		Seed:             11,
		ParallelTables:   2,
		EquityIterations: 1,
	}
	trainer, err := NewTrainer(cfg, stubBucketer{bucket: 0}, equity.SimpleEvaluator{})
	require.NoError(t, err)

	var seen []Progress
	err = trainer.Run(context.Background(), 4, func(p Progress) {
		seen = append(seen, p)
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), trainer.Iteration())
	require.Len(t, seen, 4)
	require.Greater(t, trainer.Regrets.Size(), 0)
}

func TestTrainerResumePicksUpFromCheckpoint(t *testing.T) {
	base := filepath.Join(t.TempDir(), "checkpoint")
	cfg := TrainingConfig{
		GameConfig:       tinyConfig(),
		Seed:             3,
		ParallelTables:   1,
		EquityIterations: 1,
		CheckpointEvery:  1,
		CheckpointPath:   base,
	}
	trainer, err := NewTrainer(cfg, stubBucketer{bucket: 0}, equity.SimpleEvaluator{})
	require.NoError(t, err)
	require.NoError(t, trainer.Run(context.Background(), 2, nil))
	require.Equal(t, int64(2), trainer.Iteration())

	resumed, err := NewTrainer(cfg, stubBucketer{bucket: 0}, equity.SimpleEvaluator{})
	require.NoError(t, err)
	require.NoError(t, resumed.Resume(base))
	require.Equal(t, int64(2), resumed.Iteration())
}

func TestTrainerBlueprintStrategiesAreProbabilityDistributions(t *testing.T) {
	cfg := TrainingConfig{
		GameConfig:       tinyConfig(),
		Seed:             21,
		ParallelTables:   1,
		EquityIterations: 1,
	}
	trainer, err := NewTrainer(cfg, stubBucketer{bucket: 0}, equity.SimpleEvaluator{})
	require.NoError(t, err)
	require.NoError(t, trainer.Run(context.Background(), 6, nil))

	bp := trainer.Blueprint()
	for key, dist := range bp.Strategies {
		var sum float64
		for _, p := range dist {
			require.GreaterOrEqual(t, p, 0.0, "negative probability at %s", key)
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9, "not normalized at %s", key)
	}
}
