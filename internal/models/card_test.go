// internal/models/card_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossColorPairsStayInColor(t *testing.T) {
	assert.Equal(t, SuitDiamonds, SuitHearts.CrossColor())
	assert.Equal(t, SuitHearts, SuitDiamonds.CrossColor())
	assert.Equal(t, SuitSpades, SuitClubs.CrossColor())
	assert.Equal(t, SuitClubs, SuitSpades.CrossColor())
}

func TestRankValuesOrderAceHigh(t *testing.T) {
	for i := 1; i < len(Ranks); i++ {
		assert.Greater(t, Ranks[i].Value(), Ranks[i-1].Value())
	}
	assert.Equal(t, 14, RankAce.Value())
}

func TestHasRank(t *testing.T) {
	p := NewPlayer("ana", nil)
	p.Hand = []Card{
		{Suit: SuitHearts, Rank: RankFour},
		{Suit: SuitClubs, Rank: RankAce},
	}
	idx, ok := p.HasRank(RankAce)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = p.HasRank(RankTwo)
	assert.False(t, ok)
}
