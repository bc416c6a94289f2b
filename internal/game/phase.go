// internal/game/phase.go
package game

// Phase is the turn state machine's current mode. Exactly one mode is active
// at a time; the mutually exclusive "awaiting-X" conditions are values of this
// enum rather than independent flags, so invalid combinations cannot be
// represented.
type Phase int

const (
	// PhaseLobby: room exists, game not started. Joins and pickDealer only.
	PhaseLobby Phase = iota
	// PhaseNormal: awaiting the current player's play or draw.
	PhaseNormal
	// PhaseAwaitingSuitChoice: the current player just played a 3 or 8 and
	// must name a suit before the turn advances.
	PhaseAwaitingSuitChoice
	// PhaseAwaitingDealerSuit: hand start only. A wild (8 or 3) was flipped
	// and the dealer must call a suit before anyone may act.
	PhaseAwaitingDealerSuit
	// PhaseAwaitingDealerPenalty: hand start only. An Ace or 4 was flipped
	// and the dealer must accept the penalty or reject it by playing a
	// matching card from hand.
	PhaseAwaitingDealerPenalty
	// PhaseHandComplete: a player just emptied their hand; the room is frozen
	// until the next-hand timer fires.
	PhaseHandComplete
	// PhaseRoundComplete: the 7th hand finished; awaiting the host's
	// nextRound action.
	PhaseRoundComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseNormal:
		return "normal"
	case PhaseAwaitingSuitChoice:
		return "awaitingSuitChoice"
	case PhaseAwaitingDealerSuit:
		return "awaitingDealerSuit"
	case PhaseAwaitingDealerPenalty:
		return "awaitingDealerPenalty"
	case PhaseHandComplete:
		return "handComplete"
	case PhaseRoundComplete:
		return "roundComplete"
	}
	return "unknown"
}

// PendingEffect constrains what the next play must be. Set by the previous
// play or by the flipped starting card.
type PendingEffect string

const (
	EffectNone      PendingEffect = ""
	EffectDink      PendingEffect = "dink"      // next play must be all 2s or pick up
	EffectForceFive PendingEffect = "forceFive" // next play must be all 5s
	EffectEqualRank PendingEffect = "equalRank" // next play must be 2+ cards of one rank
)
