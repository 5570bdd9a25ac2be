package notation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRangeTiersPartitionAll169(t *testing.T) {
	rt, err := DefaultRangeTiers()
	require.NoError(t, err)

	total := 0
	for i := 0; i < RangeTierCount; i++ {
		total += len(rt.Hands(i))
	}
	require.Equal(t, 169, total)
}

func TestRangeTierOfKnownHands(t *testing.T) {
	rt, err := DefaultRangeTiers()
	require.NoError(t, err)

	tier, ok := rt.TierOf("AA")
	require.True(t, ok)
	require.Equal(t, 7, tier)

	tier, ok = rt.TierOf("32o")
	require.True(t, ok)
	require.Equal(t, 0, tier)
}

func TestParseRangeNotationPlus(t *testing.T) {
	set, err := ParseRangeNotation("QQ+")
	require.NoError(t, err)
	require.Contains(t, set, "QQ")
	require.Contains(t, set, "KK")
	require.Contains(t, set, "AA")
	require.NotContains(t, set, "JJ")
}

func TestParseRangeNotationSuitedPlus(t *testing.T) {
	set, err := ParseRangeNotation("ATs+")
	require.NoError(t, err)
	require.Contains(t, set, "ATs")
	require.Contains(t, set, "AJs")
	require.Contains(t, set, "AKs")
	require.NotContains(t, set, "ATo")
}

func TestParseRangeNotationDash(t *testing.T) {
	set, err := ParseRangeNotation("22-66")
	require.NoError(t, err)
	for _, h := range []string{"22", "33", "44", "55", "66"} {
		require.Contains(t, set, h)
	}
	require.NotContains(t, set, "77")
}

func TestRangeSetJoinIsSorted(t *testing.T) {
	set, err := ParseRangeNotation("AA,KK")
	require.NoError(t, err)
	require.Equal(t, "AA,KK", set.Join())
}

func TestNewRangeTiersRejectsIncompletePartition(t *testing.T) {
	var notation [RangeTierCount]string
	notation[0] = "AA"
	_, err := NewRangeTiers(notation)
	require.Error(t, err)
}

func TestNewRangeTiersRejectsOverlap(t *testing.T) {
	notation := defaultRangeTierNotation
	notation[1] = notation[1] + ",AA"
	_, err := NewRangeTiers(notation)
	require.Error(t, err)
}
