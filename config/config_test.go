package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)
	require.Equal(t, Default(), f)
}

func TestLoadAppliesDefaultsToMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.hcl")
	contents := `
game {
  small_blind = 5
  big_blind   = 10
}

abstraction {
  buckets = 20
}

training {
  seed = 42
}
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 5, f.Game.SmallBlind)
	require.Equal(t, 10, f.Game.BigBlind)
	require.Equal(t, 200, f.Game.StartingStack) // defaulted

	require.Equal(t, 20, f.Abstraction.Buckets)
	require.Equal(t, 1, f.Abstraction.NInit) // defaulted

	require.Equal(t, 42, f.Training.Seed)
	require.Equal(t, 100, f.Training.CheckpointEvery) // defaulted
}

func TestGameConfigConvertsCleanly(t *testing.T) {
	f := Default()
	gc := f.GameConfig()
	require.Equal(t, 1, gc.SmallBlind)
	require.Equal(t, 2, gc.BigBlind)
	require.Equal(t, 200, gc.StartingStack)
	require.NoError(t, gc.Validate())
}

func TestTrainingConfigConvertsCleanly(t *testing.T) {
	f := Default()
	tc := f.TrainingConfig()
	require.NoError(t, tc.Validate())
	require.Equal(t, 28_000*time.Second, tc.RuntimeBudget)
}
