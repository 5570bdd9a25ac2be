package notation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hunlsolver/poker"
)

func TestPreflopImageHas169Hands(t *testing.T) {
	seen := make(map[string]bool)
	for suit1 := poker.Suit(1); suit1 <= 4; suit1++ {
		for suit2 := poker.Suit(1); suit2 <= 4; suit2++ {
			for r1 := poker.Two; r1 <= poker.Ace; r1++ {
				for r2 := poker.Two; r2 <= poker.Ace; r2++ {
					if r1 == r2 && suit1 == suit2 {
						continue
					}
					c1 := poker.NewCard(r1, suit1)
					c2 := poker.NewCard(r2, suit2)
					if c1 == c2 {
						continue
					}
					seen[Preflop(poker.NewHand(c1, c2))] = true
				}
			}
		}
	}
	require.Len(t, seen, 169)
}

func TestPreflopPocketPair(t *testing.T) {
	h := poker.NewHand(poker.NewCard(poker.Ace, poker.Spades), poker.NewCard(poker.Ace, poker.Hearts))
	require.Equal(t, "AA", Preflop(h))
}

func TestPreflopSuitedVsOffsuit(t *testing.T) {
	suited := poker.NewHand(poker.NewCard(poker.Ace, poker.Spades), poker.NewCard(poker.King, poker.Spades))
	offsuit := poker.NewHand(poker.NewCard(poker.Ace, poker.Spades), poker.NewCard(poker.King, poker.Hearts))
	require.Equal(t, "AKs", Preflop(suited))
	require.Equal(t, "AKo", Preflop(offsuit))
}

func TestAllPreflopHandsCount(t *testing.T) {
	require.Len(t, AllPreflopHands(), 169)
}
