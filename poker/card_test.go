package poker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardIDRoundTrip(t *testing.T) {
	seen := make(map[int]Card)
	for suit := Suit(1); suit <= 4; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			id := c.ID()
			require.GreaterOrEqual(t, id, 0)
			require.LessOrEqual(t, id, 51)
			if other, ok := seen[id]; ok {
				t.Fatalf("duplicate id %d for %v and %v", id, c, other)
			}
			seen[id] = c
			require.Equal(t, rank, c.Rank())
			require.Equal(t, suit, c.Suit())
		}
	}
	require.Len(t, seen, 52)
}

func TestCardStringRoundTrip(t *testing.T) {
	for suit := Suit(1); suit <= 4; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			parsed, err := ParseCard(c.String())
			require.NoError(t, err)
			require.Equal(t, c, parsed)
		}
	}
}

func TestParseCardsConcatenated(t *testing.T) {
	cards, err := ParseCards("AdKs")
	require.NoError(t, err)
	require.Equal(t, []Card{NewCard(Ace, Diamonds), NewCard(King, Spades)}, cards)
	require.Equal(t, "AdKs", CardsString(cards))
}

func TestParseCardsInvalidLength(t *testing.T) {
	_, err := ParseCards("Ad5")
	require.Error(t, err)
}

func TestCardSet(t *testing.T) {
	var s CardSet
	c := NewCard(Ace, Spades)
	require.False(t, s.Contains(c))
	s.Add(c)
	require.True(t, s.Contains(c))
}
