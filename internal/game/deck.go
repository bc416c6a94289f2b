// internal/game/deck.go
package game

import (
	"math/rand"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// DeckSize is the standard deck size; |drawPile| + |discardPile| + sum of all
// hands equals DeckSize at all times except mid-transaction.
const DeckSize = 52

// newDeck builds an unshuffled 52-card deck.
func newDeck() []models.Card {
	deck := make([]models.Card, 0, DeckSize)
	for _, suit := range models.Suits {
		for _, rank := range models.Ranks {
			deck = append(deck, models.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// shuffleCards shuffles in place (Fisher-Yates via rand.Shuffle).
func shuffleCards(cards []models.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// refillDrawPile moves everything but the top discard into a freshly shuffled
// draw pile. No-op unless the draw pile is empty and there is something to
// reshuffle. Assumes lock is held by caller.
func (r *Room) refillDrawPile() {
	if len(r.DrawPile) > 0 || len(r.DiscardPile) <= 1 {
		return
	}
	top := r.DiscardPile[len(r.DiscardPile)-1]
	r.DrawPile = r.DiscardPile[:len(r.DiscardPile)-1]
	r.DiscardPile = []models.Card{top}
	shuffleCards(r.DrawPile, r.rng)
	r.log.WithField("cards", len(r.DrawPile)).Debug("draw pile reshuffled from discard")
}

// drawCards moves up to n cards from the draw pile into the given player's
// hand, reshuffling the discard pile as needed. Returns how many cards were
// actually drawn (fewer only if every other card in the room is held in
// hands). Assumes lock is held by caller.
func (r *Room) drawCards(p *models.Player, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		r.refillDrawPile()
		if len(r.DrawPile) == 0 {
			break
		}
		p.Hand = append(p.Hand, r.DrawPile[0])
		r.DrawPile = r.DrawPile[1:]
		drawn++
	}
	return drawn
}

// topDiscard returns the top of the discard pile. The discard pile is never
// empty once a hand has been dealt.
func (r *Room) topDiscard() models.Card {
	return r.DiscardPile[len(r.DiscardPile)-1]
}
