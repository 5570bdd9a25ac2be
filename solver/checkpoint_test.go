package solver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hunlsolver/game"
)

func TestCheckpointRoundTripsTablesAndIteration(t *testing.T) {
	base := filepath.Join(t.TempDir(), "checkpoint")

	regrets := NewTable()
	regrets.Add("I1", game.ActionFold, 3)
	strategies := NewTable()
	strategies.Add("I1", game.ActionFold, 0.5)

	require.NoError(t, SaveCheckpoint(base, 42, regrets, strategies))

	iter, loadedRegrets, loadedStrategies, err := LoadCheckpoint(base)
	require.NoError(t, err)
	require.Equal(t, int64(42), iter)
	require.Equal(t, regrets.Snapshot(), loadedRegrets.Snapshot())
	require.Equal(t, strategies.Snapshot(), loadedStrategies.Snapshot())
}

func TestSaveCheckpointReplacesEarlierCheckpoint(t *testing.T) {
	base := filepath.Join(t.TempDir(), "checkpoint")
	regrets := NewTable()
	regrets.Add("I1", game.ActionFold, 1)
	strategies := NewTable()

	require.NoError(t, SaveCheckpoint(base, 1, regrets, strategies))
	firstIter, _, _, err := LoadCheckpoint(base)
	require.NoError(t, err)
	require.Equal(t, int64(1), firstIter)

	require.NoError(t, SaveCheckpoint(base, 2, regrets, strategies))
	secondIter, _, _, err := LoadCheckpoint(base)
	require.NoError(t, err)
	require.Equal(t, int64(2), secondIter)
}
