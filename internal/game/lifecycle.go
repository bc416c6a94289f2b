// internal/game/lifecycle.go
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avigoodman4-jpg/Dink-Game/internal/database"
	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// RoundStanding is one player's line in the end-of-round summary.
type RoundStanding struct {
	Name     string `json:"name"`
	HandsWon int    `json:"handsWon"`
	Score    int    `json:"score"`
}

// RoundResult is the end-of-round summary broadcast with roundOver.
type RoundResult struct {
	Players []RoundStanding `json:"players"`
	Winners []string        `json:"winners"`
	Message string          `json:"message"`
}

// completeHand freezes the table on a winning play, credits the winner, and
// schedules the next hand (or the round summary after hand 7). Assumes lock
// is held by caller.
func (r *Room) completeHand(winner *models.Player) {
	winner.HandsWon++
	r.Phase = PhaseHandComplete
	r.catchTargetID = uuid.Nil
	r.catchGen++

	r.log.WithFields(logrus.Fields{"winner": winner.Name, "hand": r.HandNumber}).Info("hand complete")
	r.logAction(winner.ID, "hand_won", map[string]interface{}{"hand": r.HandNumber})
	r.broadcastState(fmt.Sprintf("%s won hand %d!", winner.Name, r.HandNumber))

	r.handGen++
	gen := r.handGen
	time.AfterFunc(r.handDelay, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if r.handGen != gen || r.Phase != PhaseHandComplete {
			return
		}
		if r.HandNumber >= HandsPerRound {
			r.completeRound()
			return
		}
		r.startNextHand()
	})
}

// startNextHand rotates the dealer and deals the next, smaller hand. Assumes
// lock is held by caller.
func (r *Room) startNextHand() {
	r.HandNumber++
	r.DealerIndex = (r.DealerIndex + 1) % len(r.Players)
	r.dealHand()
	r.broadcastStateAs(EventNextHand, fmt.Sprintf("Hand %d of %d! %d cards each.",
		r.HandNumber, HandsPerRound, handSize(r.HandNumber)))
	r.promptFlipResolution()
}

// completeRound tallies the round: every player tied on the most hands won
// scores a point. The room then waits for the host to start the next round.
// Assumes lock is held by caller.
func (r *Room) completeRound() {
	r.Phase = PhaseRoundComplete

	most := 0
	for _, p := range r.Players {
		if p.HandsWon > most {
			most = p.HandsWon
		}
	}
	var winners []string
	for _, p := range r.Players {
		if p.HandsWon == most {
			p.Score++
			winners = append(winners, p.Name)
		}
	}

	standings := make([]RoundStanding, len(r.Players))
	for i, p := range r.Players {
		standings[i] = RoundStanding{Name: p.Name, HandsWon: p.HandsWon, Score: p.Score}
	}

	var msg string
	if len(winners) == 1 {
		msg = fmt.Sprintf("%s wins the round with %d hands!", winners[0], most)
	} else {
		msg = fmt.Sprintf("%s tie the round with %d hands each!", strings.Join(winners, " and "), most)
	}

	result := &RoundResult{Players: standings, Winners: winners, Message: msg}
	r.log.WithField("winners", winners).Info("round complete")
	r.logAction(uuid.Nil, "round_complete", map[string]interface{}{"winners": winners})
	r.broadcast(Event{Type: EventRoundOver, Round: result})

	// Archive is best-effort; the table plays on without a database.
	go func(code string, res RoundResult) {
		if database.DB == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.StoreRoundResult(ctx, code, res); err != nil {
			logrus.WithError(err).WithField("room", code).Warn("failed archiving round result")
		}
	}(r.Code, *result)
}

// NextRound starts a fresh round after a round summary: hands-won counters
// reset (cumulative scores stand), the dealer rotates, and hand 1 is dealt.
// Host-only.
func (r *Room) NextRound(byID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	issuer, _ := r.playerByID(byID)
	if issuer == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	if byID != r.HostID {
		r.rejectPlayer(issuer, reject(CodeWrongResponder, "only the host may start the next round"))
		return nil
	}
	if r.Phase != PhaseRoundComplete {
		r.rejectPlayer(issuer, reject(CodeOutOfTurn, "the round is still in progress"))
		return nil
	}

	for _, p := range r.Players {
		p.HandsWon = 0
	}
	r.HandNumber = 1
	r.DealerIndex = (r.DealerIndex + 1) % len(r.Players)
	r.dealHand()
	r.logAction(byID, "next_round", nil)
	r.broadcastStateAs(EventNextHand, "New round! Hand 1 of 7.")
	r.promptFlipResolution()
	return nil
}
