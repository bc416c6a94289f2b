// internal/game/sync_state.go
package game

import "github.com/avigoodman4-jpg/Dink-Game/internal/models"

// PlayerSummary is the public view of one seat: everything but the cards
// themselves.
type PlayerSummary struct {
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
	IsHost    bool   `json:"isHost"`
	HandsWon  int    `json:"handsWon"`
	Score     int    `json:"score"`
}

// StateSnapshot is a per-recipient view of the table. Each player sees their
// own hand in full and only card counts for everyone else.
type StateSnapshot struct {
	Hand               []models.Card       `json:"hand"`
	TopCard            models.Card         `json:"topCard"`
	CurrentSuit        models.Suit         `json:"currentSuit"`
	CurrentRank        models.Rank         `json:"currentRank,omitempty"`
	Players            []PlayerSummary     `json:"players"`
	CurrentPlayerIndex int                 `json:"currentPlayerIndex"`
	DealerIndex        int                 `json:"dealerIndex"`
	CurrentHand        int                 `json:"currentHand"`
	Direction          int                 `json:"direction"`
	PendingPickup      int                 `json:"pendingPickup"`
	PendingEffect      PendingEffect       `json:"pendingEffect,omitempty"`
	Phase              string              `json:"phase"`
	FlippedCardEffect  string              `json:"flippedCardEffect,omitempty"`
	LastCardDeclared   bool                `json:"lastCardDeclared"`
	Message            string              `json:"message,omitempty"`
	MyName             string              `json:"myName"`
}

// snapshotFor builds the table view as seen by one player. Assumes lock is
// held by caller.
func (r *Room) snapshotFor(viewer *models.Player, message string) *StateSnapshot {
	players := make([]PlayerSummary, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerSummary{
			Name:      p.Name,
			CardCount: len(p.Hand),
			IsHost:    p.IsHost,
			HandsWon:  p.HandsWon,
			Score:     p.Score,
		}
	}

	snap := &StateSnapshot{
		Hand:               append([]models.Card{}, viewer.Hand...),
		TopCard:            r.topDiscard(),
		CurrentSuit:        r.CurrentSuit,
		CurrentRank:        r.CurrentRank,
		Players:            players,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		DealerIndex:        r.DealerIndex,
		CurrentHand:        r.HandNumber,
		Direction:          r.Direction,
		PendingPickup:      r.PendingPickup,
		PendingEffect:      r.Pending,
		Phase:              r.Phase.String(),
		LastCardDeclared:   r.LastCardDeclared,
		Message:            message,
		MyName:             viewer.Name,
	}

	switch r.Phase {
	case PhaseAwaitingDealerPenalty:
		snap.FlippedCardEffect = string(r.PenaltyRank)
	case PhaseAwaitingDealerSuit:
		snap.FlippedCardEffect = string(r.topDiscard().Rank)
	}
	return snap
}

// broadcastState sends every connected player their own view of the table as
// a gameState event. Assumes lock is held by caller.
func (r *Room) broadcastState(message string) {
	r.broadcastStateAs(EventGameState, message)
}

// broadcastStateAs is broadcastState with a different event type (gameStarted,
// nextHand). Assumes lock is held by caller.
func (r *Room) broadcastStateAs(t EventType, message string) {
	for _, p := range r.Players {
		r.sendTo(p, Event{Type: t, State: r.snapshotFor(p, message)})
	}
}
