// internal/game/events.go
package game

import "github.com/avigoodman4-jpg/Dink-Game/internal/models"

// EventType names an outbound frame sent over the room's transport.
type EventType string

// Constants defining the outbound event types.
const (
	EventJoinedRoom           EventType = "joinedRoom"           // To joiner: room code, players, isHost.
	EventPlayerJoined         EventType = "playerJoined"         // To others: updated player list.
	EventPlayerLeft           EventType = "playerLeft"           // Public: updated player list + who left.
	EventPlayerRejoined       EventType = "playerRejoined"       // Public: a held seat reconnected.
	EventCardFlipResult       EventType = "cardFlipResult"       // Public: dealer-selection flips and winner.
	EventGameStarted          EventType = "gameStarted"          // Per-recipient: first hand snapshot.
	EventGameState            EventType = "gameState"            // Per-recipient: full state snapshot.
	EventNextHand             EventType = "nextHand"             // Per-recipient: fresh hand snapshot.
	EventRoundOver            EventType = "roundOver"            // Public: hands won, scores, round winners.
	EventChooseSuit           EventType = "chooseSuit"           // Private prompt: name a suit for your wild.
	EventDealerPenaltyPrompt  EventType = "dealerPenaltyPrompt"  // Private prompt: accept or reject the flip.
	EventWaitingForDealerSuit EventType = "waitingForDealerSuit" // Public info: dealer must call a suit.
	EventLastCardDeclared     EventType = "lastCardDeclared"     // Public: player said "last card".
	EventCatchable            EventType = "catchable"            // Public: player is catchable for a short window.
	EventCaughtLastCard       EventType = "caughtLastCard"       // Public: catch succeeded, penalty drawn.
	EventChatMessage          EventType = "chatMessage"          // Public: table chat line.
	EventInvalidPlay          EventType = "invalidPlay"          // Private: action rejected, with reason.
	EventSessionToken         EventType = "sessionToken"         // Private: signed session token after join.
	EventActionHistory        EventType = "actionHistory"        // Private: replayed action log on reconnect.
)

// Event is the standard outbound frame. Exactly one of the typed payloads is
// populated per event; Payload carries small ad-hoc fields.
type Event struct {
	Type    EventType              `json:"type"`
	State   *StateSnapshot         `json:"state,omitempty"`
	Flip    *FlipResult            `json:"flip,omitempty"`
	Round   *RoundResult           `json:"round,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// SendFn delivers an event to a single player. The transport supplies it; the
// engine never touches sockets directly, which keeps the rules testable
// without networking.
type SendFn func(p *models.Player, ev Event)
