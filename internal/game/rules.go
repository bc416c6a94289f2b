// internal/game/rules.go
package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// cardsAt resolves hand indices into cards, refusing out-of-range or
// duplicate indices. Assumes lock is held by caller.
func cardsAt(p *models.Player, indices []int) ([]models.Card, *Rejection) {
	if len(indices) == 0 {
		return nil, reject(CodeIllegalCombination, "no cards selected")
	}
	seen := make(map[int]bool, len(indices))
	cards := make([]models.Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(p.Hand) {
			return nil, reject(CodeIllegalCombination, "card index %d out of range (hand has %d cards)", idx, len(p.Hand))
		}
		if seen[idx] {
			return nil, reject(CodeIllegalCombination, "card index %d selected twice", idx)
		}
		seen[idx] = true
		cards = append(cards, p.Hand[idx])
	}
	return cards, nil
}

// validatePlay checks a candidate play against the current match target and
// pending effect. It never mutates; a nil result means the play is legal.
// Assumes lock is held by caller.
func (r *Room) validatePlay(cards []models.Card) *Rejection {
	rank := cards[0].Rank
	for _, c := range cards {
		if c.Rank != rank {
			return reject(CodeIllegalCombination, "all cards in a play must share one rank")
		}
	}

	switch r.Pending {
	case EffectDink:
		for _, c := range cards {
			if c.Rank != models.RankTwo {
				return reject(CodeMissingCard, "a dink is pending: stack 2s or draw %d", r.PendingPickup)
			}
		}
		return nil
	case EffectForceFive:
		for _, c := range cards {
			if c.Rank != models.RankFive {
				return reject(CodeMissingCard, "a 5 is in force: play 5s or draw")
			}
		}
		return nil
	case EffectEqualRank:
		if len(cards) < 2 {
			return reject(CodeMissingCard, "a 6 is in force: play at least two cards of one rank or draw")
		}
		return nil
	}

	suit := cards[0].Suit
	switch {
	case rank == models.RankEight:
		// Full wild.
		return nil
	case rank == models.RankThree:
		// Half wild: only on the active suit or another 3.
		if suit == r.CurrentSuit || r.CurrentRank == models.RankThree {
			return nil
		}
		return reject(CodeIllegalCombination, "a 3 only plays on %s or another 3 (active: %s %s)",
			r.CurrentSuit, r.CurrentSuit, r.CurrentRank)
	case suit == r.CurrentSuit || rank == r.CurrentRank:
		return nil
	}
	return reject(CodeIllegalCombination, "play does not match suit %s or rank %s", r.CurrentSuit, r.CurrentRank)
}

// removeFromHand removes the cards at the given indices, preserving the order
// of what remains. Assumes lock is held by caller.
func removeFromHand(p *models.Player, indices []int) {
	sorted := append([]int{}, indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	}
}

// checkActionable vets the common preconditions for a turn action: the room
// is mid-hand, nothing is paused on a prompt, and it is the issuer's turn.
// Assumes lock is held by caller.
func (r *Room) checkActionable(seat int) *Rejection {
	switch r.Phase {
	case PhaseLobby:
		return reject(CodeOutOfTurn, "the game has not started")
	case PhaseAwaitingSuitChoice:
		return reject(CodeWrongResponder, "waiting for %s to name a suit", r.Players[r.SuitChooser].Name)
	case PhaseAwaitingDealerSuit:
		return reject(CodeWrongResponder, "waiting for the dealer to call the opening suit")
	case PhaseAwaitingDealerPenalty:
		return reject(CodeWrongResponder, "waiting for the dealer to resolve the flipped %s", r.PenaltyRank)
	case PhaseHandComplete, PhaseRoundComplete:
		return reject(CodeOutOfTurn, "the hand is over")
	}
	if seat != r.CurrentPlayerIndex {
		return reject(CodeOutOfTurn, "it is %s's turn", r.Players[r.CurrentPlayerIndex].Name)
	}
	return nil
}

// HandlePlay validates and applies a play of one or more same-rank cards.
// Rejections leave the room untouched and are reported only to the issuer.
func (r *Room) HandlePlay(playerID uuid.UUID, indices []int) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, seat := r.playerByID(playerID)
	if p == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	if rej := r.checkActionable(seat); rej != nil {
		r.rejectPlayer(p, rej)
		return nil
	}
	cards, rej := cardsAt(p, indices)
	if rej != nil {
		r.rejectPlayer(p, rej)
		return nil
	}
	if rej := r.validatePlay(cards); rej != nil {
		r.rejectPlayer(p, rej)
		return nil
	}

	wasDeclared := r.LastCardDeclared
	r.LastCardDeclared = false

	removeFromHand(p, indices)
	r.DiscardPile = append(r.DiscardPile, cards...)

	// The last card of a multi-card play sets the match target.
	last := cards[len(cards)-1]
	r.CurrentRank = last.Rank
	r.CurrentSuit = last.Suit
	r.Pending = EffectNone

	count := len(cards)
	r.logAction(playerID, "play_cards", map[string]interface{}{
		"rank": string(last.Rank), "count": count,
	})

	// Winning play: the hand ends the instant a hand empties, before any
	// effect (including a wild's suit choice) would resolve.
	if len(p.Hand) == 0 {
		r.completeHand(p)
		return nil
	}

	msg := fmt.Sprintf("%s played %s", p.Name, describePlay(cards))
	extraTurn := false

	switch last.Rank {
	case models.RankTwo:
		r.PendingPickup += 2 * count
		if r.PendingPickup > PickupCap {
			r.PendingPickup = PickupCap
		}
		r.Pending = EffectDink
		msg = fmt.Sprintf("%s played a Dink! Next player picks up %d!", p.Name, r.PendingPickup)

	case models.RankThree, models.RankEight:
		// Pause the turn until the player names a suit.
		r.Phase = PhaseAwaitingSuitChoice
		r.SuitChooser = seat
		if last.Rank == models.RankEight {
			msg = fmt.Sprintf("%s played a wild 8! Choosing suit...", p.Name)
		} else {
			msg = fmt.Sprintf("%s played a 3! Choosing suit...", p.Name)
		}
		r.maybeOpenCatchWindow(p, wasDeclared)
		r.broadcastState(msg)
		r.sendTo(p, Event{Type: EventChooseSuit})
		return nil

	case models.RankFour:
		if count%2 != 0 {
			r.drawCards(p, 1)
			msg = fmt.Sprintf("%s played an odd number of 4s and picked up 1!", p.Name)
		}

	case models.RankFive:
		r.Pending = EffectForceFive
		msg = fmt.Sprintf("%s played a 5! Next player must play a 5!", p.Name)

	case models.RankSix:
		r.Pending = EffectEqualRank
		msg = fmt.Sprintf("%s played a 6! Next player must play 2+ cards of same rank!", p.Name)

	case models.RankNine:
		if len(r.Players) > 2 {
			r.Direction *= -1
			msg = fmt.Sprintf("%s reversed the direction!", p.Name)
		} else {
			msg = fmt.Sprintf("%s played a 9 (no effect in 2-player)", p.Name)
		}

	case models.RankTen:
		r.CurrentSuit = last.Suit.CrossColor()
		msg = fmt.Sprintf("%s played a 10! Suit changed to %s!", p.Name, r.CurrentSuit)

	case models.RankJack:
		if len(r.Players) > 2 {
			skipped := r.nextSeat(seat)
			r.SkippedSeats[skipped] = true
			msg = fmt.Sprintf("%s played a Jack! %s is skipped!", p.Name, r.Players[skipped].Name)
		} else {
			extraTurn = true
			msg = fmt.Sprintf("%s played a Jack! Play returns to %s!", p.Name, p.Name)
		}

	case models.RankKing:
		if count%2 == 0 {
			extraTurn = true
			msg = fmt.Sprintf("%s played %d Kings and gets another turn!", p.Name, count)
		}

	case models.RankAce:
		// A still-pending flipped-Ace carry counts toward the hand's first
		// Ace-parity computation, then is spent.
		total := count + r.AceCarry
		r.AceCarry = 0
		if total%2 != 0 {
			r.SkippedSeats[r.nextSeat(seat)] = true
			msg = fmt.Sprintf("%s played an odd Ace! Next player is skipped!", p.Name)
		}
	}

	r.maybeOpenCatchWindow(p, wasDeclared)

	if !extraTurn {
		r.advanceTurn()
	}
	r.broadcastState(msg)
	return nil
}

// describePlay renders a play for table messages ("2x K", "J").
func describePlay(cards []models.Card) string {
	if len(cards) > 1 {
		return fmt.Sprintf("%dx %s", len(cards), cards[0].Rank)
	}
	return string(cards[0].Rank)
}

// HandleDraw applies a draw by the current player: the owed pickup if a dink
// is pending, one card to duck a forceFive/equalRank demand, or a plain
// single draw. Every draw restores the match target from the true top of
// discard, clears all pending state, and advances the turn.
func (r *Room) HandleDraw(playerID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, seat := r.playerByID(playerID)
	if p == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	if rej := r.checkActionable(seat); rej != nil {
		r.rejectPlayer(p, rej)
		return nil
	}

	var msg string
	switch {
	case r.PendingPickup > 0:
		drawn := r.drawCards(p, r.PendingPickup)
		msg = fmt.Sprintf("%s picked up %d cards!", p.Name, drawn)
	case r.Pending == EffectForceFive || r.Pending == EffectEqualRank:
		r.drawCards(p, 1)
		msg = fmt.Sprintf("%s couldn't respond and picked up 1!", p.Name)
	default:
		r.drawCards(p, 1)
		msg = fmt.Sprintf("%s drew a card.", p.Name)
	}

	r.PendingPickup = 0
	r.Pending = EffectNone
	r.LastCardDeclared = false

	// Reset the match target from the real top of discard. A hand-start wild
	// that the dealer called a suit for stays rankless and keeps the called
	// suit; it is never a match target.
	top := r.topDiscard()
	if !(len(r.DiscardPile) == 1 && (top.Rank == models.RankEight || top.Rank == models.RankThree)) {
		r.CurrentSuit = top.Suit
		r.CurrentRank = top.Rank
	}

	r.logAction(playerID, "draw_card", map[string]interface{}{"hand": len(p.Hand)})
	r.advanceTurn()
	r.broadcastState(msg)
	return nil
}

// HandleChooseSuit resolves a pending suit choice, either by the player who
// just played a wild or by the dealer after a wild flip.
func (r *Room) HandleChooseSuit(playerID uuid.UUID, suit models.Suit) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, seat := r.playerByID(playerID)
	if p == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	if !suit.Valid() {
		r.rejectPlayer(p, reject(CodeIllegalCombination, "unknown suit %q", suit))
		return nil
	}

	switch r.Phase {
	case PhaseAwaitingSuitChoice:
		if seat != r.SuitChooser {
			r.rejectPlayer(p, reject(CodeWrongResponder, "waiting for %s to name a suit", r.Players[r.SuitChooser].Name))
			return nil
		}
		r.CurrentSuit = suit
		r.Phase = PhaseNormal
		r.logAction(playerID, "choose_suit", map[string]interface{}{"suit": string(suit)})
		r.advanceTurn()
		r.broadcastState(fmt.Sprintf("%s chose %s!", p.Name, suit))
		return nil

	case PhaseAwaitingDealerSuit:
		if seat != r.DealerIndex {
			r.rejectPlayer(p, reject(CodeWrongResponder, "only the dealer may call the opening suit"))
			return nil
		}
		r.CurrentSuit = suit
		r.Phase = PhaseNormal
		r.logAction(playerID, "dealer_suit_call", map[string]interface{}{"suit": string(suit)})
		// The first player has not acted yet; the turn does not advance.
		r.broadcastState(fmt.Sprintf("Dealer %s called %s to open the hand!", p.Name, suit))
		return nil
	}

	r.rejectPlayer(p, reject(CodeWrongResponder, "no suit choice is pending"))
	return nil
}

// HandleDealerPenalty resolves a flipped Ace or 4: the dealer either accepts
// the penalty (Ace: first turn skipped; 4: draw one) or rejects it by playing
// a card of the flipped rank from hand.
func (r *Room) HandleDealerPenalty(playerID uuid.UUID, accept bool, cardIndex int) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, seat := r.playerByID(playerID)
	if p == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	if r.Phase != PhaseAwaitingDealerPenalty {
		r.rejectPlayer(p, reject(CodeWrongResponder, "no dealer penalty is pending"))
		return nil
	}
	if seat != r.DealerIndex {
		r.rejectPlayer(p, reject(CodeWrongResponder, "only the dealer may resolve the flipped %s", r.PenaltyRank))
		return nil
	}

	var msg string
	if accept {
		if r.PenaltyRank == models.RankAce {
			r.SkippedSeats[r.DealerIndex] = true
			r.AceCarry = 0
			msg = fmt.Sprintf("Dealer %s accepted the flipped Ace and loses their first turn!", p.Name)
		} else {
			r.drawCards(p, 1)
			msg = fmt.Sprintf("Dealer %s accepted the flipped 4 and picked up 1!", p.Name)
		}
		r.logAction(playerID, "dealer_penalty_accept", map[string]interface{}{"rank": string(r.PenaltyRank)})
	} else {
		// With no explicit index the first matching card is played.
		if cardIndex < 0 {
			if idx, ok := p.HasRank(r.PenaltyRank); ok {
				cardIndex = idx
			}
		}
		if cardIndex < 0 || cardIndex >= len(p.Hand) || p.Hand[cardIndex].Rank != r.PenaltyRank {
			r.rejectPlayer(p, reject(CodeMissingCard, "rejecting the flipped %s requires playing a %s from hand",
				r.PenaltyRank, r.PenaltyRank))
			return nil
		}
		card := p.Hand[cardIndex]
		removeFromHand(p, []int{cardIndex})
		r.DiscardPile = append(r.DiscardPile, card)
		r.CurrentSuit = card.Suit
		r.CurrentRank = card.Rank
		// A rejected flipped Ace keeps its carry of 1 for the hand's first
		// in-hand Ace-parity computation.
		msg = fmt.Sprintf("Dealer %s rejected the flipped %s by playing the %s!", p.Name, r.PenaltyRank, card)
		r.logAction(playerID, "dealer_penalty_reject", map[string]interface{}{"card": card.String()})

		if len(p.Hand) == 0 {
			r.PenaltyRank = ""
			r.completeHand(p)
			return nil
		}
	}

	r.PenaltyRank = ""
	r.Phase = PhaseNormal
	r.broadcastState(msg)
	return nil
}
