package solver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hunlsolver/game"
)

func TestTableAddAccumulatesPerKeyPerAction(t *testing.T) {
	table := NewTable()
	table.Add("I1", game.ActionFold, 3)
	table.Add("I1", game.ActionFold, 2)
	table.Add("I1", game.ActionCall, -1)

	values := table.Values("I1", []game.Action{game.ActionFold, game.ActionCall, game.ActionCheck})
	require.InDelta(t, 5.0, values[game.ActionFold], 1e-9)
	require.InDelta(t, -1.0, values[game.ActionCall], 1e-9)
	require.InDelta(t, 0.0, values[game.ActionCheck], 1e-9)
}

func TestTableValuesZeroInitializedOnFirstVisit(t *testing.T) {
	table := NewTable()
	values := table.Values("never-seen", []game.Action{game.ActionFold, game.ActionCheck})
	require.Equal(t, map[game.Action]float64{game.ActionFold: 0, game.ActionCheck: 0}, values)
	require.Equal(t, 1, table.Size()) // Values() still materializes the entry.
}

func TestTableSnapshotRoundTripsThroughLoadSnapshot(t *testing.T) {
	table := NewTable()
	table.Add("I1", game.ActionFold, 3)
	table.Add("I2", game.ActionBetPot, -4)

	snap := table.Snapshot()
	restored := NewTable()
	restored.LoadSnapshot(snap)

	require.Equal(t, snap, restored.Snapshot())
}

func TestTableConcurrentAddsAreRaceFree(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Add("hot-key", game.ActionFold, 1)
		}()
	}
	wg.Wait()
	values := table.Values("hot-key", []game.Action{game.ActionFold})
	require.InDelta(t, 100.0, values[game.ActionFold], 1e-9)
}
