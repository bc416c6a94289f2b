// internal/game/lastcard.go
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// HandleDeclareLastCard records a "last card" declaration. Only legal on the
// declarer's own turn, mid-hand, while holding exactly two cards (about to
// play down to one).
func (r *Room) HandleDeclareLastCard(playerID uuid.UUID) error {
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
	if len(p.Hand) != 2 {
		r.rejectPlayer(p, reject(CodeIllegalCombination,
			"last card may only be declared holding exactly two cards (you hold %d)", len(p.Hand)))
		return nil
	}
	if r.LastCardDeclared {
		r.rejectPlayer(p, reject(CodeIllegalCombination, "last card is already declared"))
		return nil
	}

	r.LastCardDeclared = true
	r.logAction(playerID, "declare_last_card", nil)
	r.broadcast(Event{Type: EventLastCardDeclared, Payload: map[string]interface{}{
		"playerName": p.Name,
	}})
	return nil
}

// maybeOpenCatchWindow opens the catch window if the play just made dropped
// the player to a single card without a declaration in force. Assumes lock is
// held by caller.
func (r *Room) maybeOpenCatchWindow(p *models.Player, declared bool) {
	if len(p.Hand) != 1 || declared {
		return
	}
	r.catchGen++
	r.catchTargetID = p.ID
	r.broadcast(Event{Type: EventCatchable, Payload: map[string]interface{}{
		"playerName": p.Name,
	}})
	r.closeCatchWindowLater(r.catchGen, p.ID)
}

// HandleCatchLastCard resolves a catch attempt against the named player. Only
// valid while that player's catch window is open; the caught player draws one
// card. The window closing silently is not an event.
func (r *Room) HandleCatchLastCard(playerID uuid.UUID, targetName string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	catcher, _ := r.playerByID(playerID)
	if catcher == nil {
		return reject(CodeWrongResponder, "unknown player")
	}
	target, _ := r.playerByName(targetName)
	if target == nil || r.catchTargetID == uuid.Nil || target.ID != r.catchTargetID {
		r.rejectPlayer(catcher, reject(CodeIllegalCombination, "%s is not catchable", targetName))
		return nil
	}
	if catcher.ID == target.ID {
		r.rejectPlayer(catcher, reject(CodeIllegalCombination, "you cannot catch yourself"))
		return nil
	}

	r.catchTargetID = uuid.Nil
	r.catchGen++
	r.drawCards(target, 1)

	msg := fmt.Sprintf("%s forgot to say Last Card and picks up 1!", target.Name)
	r.logAction(playerID, "catch_last_card", map[string]interface{}{"caught": target.Name})
	r.broadcast(Event{Type: EventCaughtLastCard, Payload: map[string]interface{}{
		"caughtPlayerName": target.Name,
		"catcherName":      catcher.Name,
	}})
	r.broadcastState(msg)
	return nil
}

// closeCatchWindowLater arms the silent expiry of an open catch window. A
// stale timer bails out on the generation token. Assumes lock is held by
// caller.
func (r *Room) closeCatchWindowLater(gen int, targetID uuid.UUID) {
	time.AfterFunc(r.catchWindow, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if r.catchGen != gen || r.catchTargetID != targetID {
			return
		}
		r.catchTargetID = uuid.Nil
	})
}
