// internal/game/deal.go
package game

import (
	"github.com/google/uuid"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// handSize returns the number of cards dealt per player for the given hand
// number: 7,6,5,4,3,2,1 across the seven hands of a round.
func handSize(handNumber int) int {
	return 8 - handNumber
}

// dealHand deals a fresh hand: new shuffled deck, handSize cards each, one
// card flipped to start the discard pile, and the opening rule state derived
// from the flip. Leaves the room in PhaseNormal unless the flip requires the
// dealer to resolve something first. Assumes lock is held by caller.
func (r *Room) dealHand() {
	deck := newDeck()
	shuffleCards(deck, r.rng)

	per := handSize(r.HandNumber)
	for _, p := range r.Players {
		p.Hand = append([]models.Card{}, deck[:per]...)
		deck = deck[per:]
	}

	flip := deck[0]
	r.DrawPile = deck[1:]
	r.DiscardPile = []models.Card{flip}

	r.CurrentSuit = flip.Suit
	r.CurrentRank = flip.Rank
	r.Pending = EffectNone
	r.PendingPickup = 0
	r.SkippedSeats = make(map[int]bool)
	r.Direction = 1
	r.AceCarry = 0
	r.LastCardDeclared = false
	r.PenaltyRank = ""
	r.catchTargetID = uuid.Nil
	r.Phase = PhaseNormal

	r.resolveFlip(flip)
	r.setFirstPlayer()

	r.log.WithFields(map[string]interface{}{
		"hand": r.HandNumber, "flip": flip.String(), "phase": r.Phase.String(),
	}).Info("hand dealt")
}

// resolveFlip applies the flipped starting card's effect. Unlike an in-hand
// play nobody chose to play this card, so several ranks resolve differently:
// penalties fall on the dealer, and wilds gate the whole table on a dealer
// suit call rather than being redrawn. Assumes lock is held by caller.
func (r *Room) resolveFlip(flip models.Card) {
	switch flip.Rank {
	case models.RankTwo:
		// Owed by the first player to act.
		r.PendingPickup = 2
		r.Pending = EffectDink
	case models.RankFive:
		r.Pending = EffectForceFive
	case models.RankSix:
		r.Pending = EffectEqualRank
	case models.RankNine:
		if len(r.Players) > 2 {
			r.Direction = -1
		}
	case models.RankTen:
		r.CurrentSuit = flip.Suit.CrossColor()
	case models.RankJack:
		if len(r.Players) == 2 {
			// The dealer's own first turn is skipped, handing the opening
			// play straight to the non-dealer.
			r.SkippedSeats[r.DealerIndex] = true
		} else {
			r.SkippedSeats[(r.DealerIndex+1)%len(r.Players)] = true
		}
	case models.RankAce:
		r.AceCarry = 1
		r.PenaltyRank = models.RankAce
		r.Phase = PhaseAwaitingDealerPenalty
	case models.RankFour:
		r.PenaltyRank = models.RankFour
		r.Phase = PhaseAwaitingDealerPenalty
	case models.RankEight, models.RankThree:
		// Dealer-call policy: the wild stays on top but cannot be the active
		// match target; nobody may play until the dealer names a suit.
		r.CurrentRank = ""
		r.Phase = PhaseAwaitingDealerSuit
	}
}

// setFirstPlayer points the turn at the seat after the dealer, consuming any
// skip the flip placed there so the invariant (current player is never a
// skipped seat) holds from the first broadcast. Assumes lock is held by
// caller.
func (r *Room) setFirstPlayer() {
	first := (r.DealerIndex + 1) % len(r.Players)
	for r.SkippedSeats[first] {
		delete(r.SkippedSeats, first)
		first = r.nextSeat(first)
	}
	r.CurrentPlayerIndex = first
}

// promptFlipResolution tells the dealer what they must resolve (and everyone
// else what they are waiting for) after a deal whose flip paused the table.
// Assumes lock is held by caller.
func (r *Room) promptFlipResolution() {
	dealer := r.Players[r.DealerIndex]
	switch r.Phase {
	case PhaseAwaitingDealerPenalty:
		r.sendTo(dealer, Event{Type: EventDealerPenaltyPrompt, Payload: map[string]interface{}{
			"rank": string(r.PenaltyRank),
		}})
	case PhaseAwaitingDealerSuit:
		r.sendTo(dealer, Event{Type: EventChooseSuit, Payload: map[string]interface{}{
			"reason": "flippedWild",
		}})
		r.broadcastExcept(dealer, Event{Type: EventWaitingForDealerSuit, Payload: map[string]interface{}{
			"dealer": dealer.Name,
		}})
	}
}

// StartGame begins the first hand. Host-only, needs at least two players. If
// no dealer flip ritual was run, seat 0 deals.
func (r *Room) StartGame(byID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	issuer, _ := r.playerByID(byID)
	if issuer == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	if byID != r.HostID {
		r.rejectPlayer(issuer, reject(CodeWrongResponder, "only the host may start the game"))
		return nil
	}
	if r.Started {
		r.rejectPlayer(issuer, reject(CodeGameInProgress, "the game has already started"))
		return nil
	}
	if len(r.Players) < 2 {
		r.rejectPlayer(issuer, reject(CodeNotEnoughPlayers, "need at least 2 players, have %d", len(r.Players)))
		return nil
	}

	r.Started = true
	r.HandNumber = 1
	for _, p := range r.Players {
		p.HandsWon = 0
		p.Score = 0
	}
	r.dealHand()
	r.logAction(byID, "game_start", map[string]interface{}{"players": len(r.Players)})

	r.broadcastStateAs(EventGameStarted, "Game on! Hand 1 of 7.")
	r.promptFlipResolution()
	return nil
}
