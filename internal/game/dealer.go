// internal/game/dealer.go
package game

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// PlayerFlip is one player's card in the dealer-selection ritual.
type PlayerFlip struct {
	Name string      `json:"name"`
	Card models.Card `json:"card"`
}

// FlipResult is the outcome of the dealer-selection flips: the final merged
// flip per player, plus the winner. The flips do not come from the game deck,
// so duplicate cards across players are possible and expected.
type FlipResult struct {
	Flips       []PlayerFlip `json:"flippedCards"`
	WinnerName  string       `json:"winnerName"`
	DealerIndex int          `json:"dealerIndex"`
}

// randomFlip assigns a uniformly random card (suit and rank independently
// uniform) to each named player.
func randomFlip(names []string, rng *rand.Rand) []PlayerFlip {
	flips := make([]PlayerFlip, len(names))
	for i, name := range names {
		flips[i] = PlayerFlip{
			Name: name,
			Card: models.Card{
				Suit: models.Suits[rng.Intn(len(models.Suits))],
				Rank: models.Ranks[rng.Intn(len(models.Ranks))],
			},
		}
	}
	return flips
}

// flipWinners returns the names of the players whose flip ties the highest
// rank value.
func flipWinners(flips []PlayerFlip) []string {
	best := 0
	for _, f := range flips {
		if v := f.Card.Rank.Value(); v > best {
			best = v
		}
	}
	var winners []string
	for _, f := range flips {
		if f.Card.Rank.Value() == best {
			winners = append(winners, f.Name)
		}
	}
	return winners
}

// flipForDealer runs the dealer-selection procedure: flip a random card per
// player, and while more than one player ties the highest card, re-flip the
// tied subset only, merging each re-flip back over the original flips so that
// non-tied players keep their cards. Terminates with a unique winner.
func flipForDealer(names []string, rng *rand.Rand) ([]PlayerFlip, string) {
	flips := randomFlip(names, rng)
	winners := flipWinners(flips)
	for len(winners) > 1 {
		reflips := randomFlip(winners, rng)
		merged := make(map[string]PlayerFlip, len(reflips))
		for _, f := range reflips {
			merged[f.Name] = f
		}
		for i, f := range flips {
			if re, ok := merged[f.Name]; ok {
				flips[i] = re
			}
		}
		winners = flipWinners(reflips)
	}
	return flips, winners[0]
}

// PickDealer runs the dealer-selection flips. Host-only, before the game has
// started. The result is broadcast to the whole room.
func (r *Room) PickDealer(byID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	issuer, _ := r.playerByID(byID)
	if issuer == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	if byID != r.HostID {
		r.rejectPlayer(issuer, reject(CodeWrongResponder, "only the host may flip for dealer"))
		return nil
	}
	if r.Started {
		r.rejectPlayer(issuer, reject(CodeGameInProgress, "the game has already started"))
		return nil
	}

	names := make([]string, len(r.Players))
	for i, p := range r.Players {
		names[i] = p.Name
	}
	flips, winner := flipForDealer(names, r.rng)
	_, seat := r.playerByName(winner)
	r.DealerIndex = seat
	r.DealerPicked = true

	r.log.WithFields(map[string]interface{}{"dealer": winner, "seat": seat}).Info("dealer selected")
	r.logAction(byID, "pick_dealer", map[string]interface{}{"dealer": winner})

	result := &FlipResult{Flips: flips, WinnerName: winner, DealerIndex: seat}
	r.broadcast(Event{Type: EventCardFlipResult, Flip: result, Payload: map[string]interface{}{
		"players": r.playerRoster(),
	}})
	return nil
}
