// internal/game/deck_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

func TestNewDeck(t *testing.T) {
	deck := newDeck()
	require.Len(t, deck, DeckSize)

	seen := make(map[models.Card]bool, DeckSize)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestRefillDrawPileKeepsTopDiscard(t *testing.T) {
	r, _ := newTestRoom(t, "ana", "bo")
	top := card(models.SuitHearts, models.RankNine)
	rig(r, func(r *Room) {
		r.DrawPile = nil
		r.DiscardPile = []models.Card{
			card(models.SuitClubs, models.RankFour),
			card(models.SuitSpades, models.RankQueen),
			top,
		}
		r.refillDrawPile()
	})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, []models.Card{top}, r.DiscardPile)
	assert.Len(t, r.DrawPile, 2)
}

func TestDrawCardsStopsWhenRoomIsExhausted(t *testing.T) {
	r, _ := newTestRoom(t, "ana", "bo")
	rig(r, func(r *Room) {
		r.DrawPile = []models.Card{card(models.SuitHearts, models.RankSeven)}
		r.DiscardPile = []models.Card{card(models.SuitSpades, models.RankNine)}
	})

	var drawn int
	rig(r, func(r *Room) {
		drawn = r.drawCards(r.Players[0], 8)
	})

	// One card in the draw pile, top discard never moves.
	assert.Equal(t, 1, drawn)
	assert.Equal(t, 1, handLen(r, 0))
}

func TestDrawCardsReshufflesMidDraw(t *testing.T) {
	r, _ := newTestRoom(t, "ana", "bo")
	rig(r, func(r *Room) {
		r.DrawPile = []models.Card{card(models.SuitHearts, models.RankSeven)}
		r.DiscardPile = []models.Card{
			card(models.SuitClubs, models.RankFour),
			card(models.SuitClubs, models.RankFive),
			card(models.SuitSpades, models.RankNine),
		}
	})

	var drawn int
	rig(r, func(r *Room) {
		drawn = r.drawCards(r.Players[0], 3)
	})

	assert.Equal(t, 3, drawn)
	assert.Equal(t, 3, handLen(r, 0))
	r.Mu.Lock()
	assert.Equal(t, card(models.SuitSpades, models.RankNine), r.topDiscard())
	r.Mu.Unlock()
}
