// internal/game/room.go
package game

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avigoodman4-jpg/Dink-Game/internal/cache"
	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// Capacity and pacing constants.
const (
	MaxPlayers        = 5
	HandsPerRound     = 7
	PickupCap         = 8
	HandCompleteDelay = 2 * time.Second
	CatchWindow       = 3 * time.Second
)

// Room holds one game table. All mutation happens under Mu; at most one event
// per room is being validated or applied at any instant. Methods whose names
// are exported acquire the lock themselves; lowercase helpers assume the lock
// is held by the caller.
type Room struct {
	Code    string
	Players []*models.Player
	HostID  uuid.UUID
	Started bool

	DrawPile    []models.Card
	DiscardPile []models.Card

	DealerIndex        int
	CurrentPlayerIndex int
	Direction          int

	CurrentSuit   models.Suit
	CurrentRank   models.Rank // empty when no rank may be matched (dealer-called wild flip)
	Pending       PendingEffect
	PendingPickup int
	SkippedSeats  map[int]bool
	AceCarry      int // flipped-Ace parity carryover, consumed by the hand's first Ace play

	Phase       Phase
	SuitChooser int         // seat that must name a suit while PhaseAwaitingSuitChoice
	PenaltyRank models.Rank // A or 4 while PhaseAwaitingDealerPenalty

	HandNumber       int
	DealerPicked     bool
	LastCardDeclared bool

	// Timer generation tokens. A fired timer re-acquires the lock and bails
	// out if its captured generation no longer matches, so a stale timer can
	// never act on a room that has since moved on.
	handGen  int
	catchGen int

	catchTargetID uuid.UUID // player currently catchable, or Nil

	// Pacing, overridable in tests.
	handDelay   time.Duration
	catchWindow time.Duration

	Send SendFn

	rng         *rand.Rand
	actionIndex int
	log         *logrus.Entry

	Mu sync.Mutex
}

// NewRoom creates an empty room for the given code.
func NewRoom(code string) *Room {
	return &Room{
		Code:         code,
		Direction:    1,
		HandNumber:   1,
		SkippedSeats: make(map[int]bool),
		Phase:        PhaseLobby,
		handDelay:    HandCompleteDelay,
		catchWindow:  CatchWindow,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		log:          logrus.WithField("room", code),
	}
}

// AddPlayer seats a new player. Rejections: room full, name taken (exact
// case-sensitive match), game already started. Assumes lock is held by caller
// (the registry serializes joins through it).
func (r *Room) AddPlayer(p *models.Player) error {
	if r.Started {
		return reject(CodeGameInProgress, "room %s has a game in progress", r.Code)
	}
	if len(r.Players) >= MaxPlayers {
		return reject(CodeRoomFull, "room %s is full (%d players)", r.Code, MaxPlayers)
	}
	for _, existing := range r.Players {
		if existing.Name == p.Name {
			return reject(CodeNameTaken, "name %q is already taken in room %s", p.Name, r.Code)
		}
	}
	if len(r.Players) == 0 {
		p.IsHost = true
		r.HostID = p.ID
	}
	r.Players = append(r.Players, p)
	r.log.WithFields(logrus.Fields{"player": p.Name, "seats": len(r.Players)}).Info("player joined")
	r.logAction(p.ID, "player_join", map[string]interface{}{"name": p.Name})

	r.sendTo(p, Event{Type: EventJoinedRoom, Payload: map[string]interface{}{
		"room":    r.Code,
		"players": r.playerRoster(),
		"isHost":  p.IsHost,
	}})
	r.broadcastExcept(p, Event{Type: EventPlayerJoined, Payload: map[string]interface{}{
		"players": r.playerRoster(),
	}})
	return nil
}

// RemovePlayer unseats a player (disconnect). Reassigns the host to seat 0 if
// the host left and reports whether the room is now empty. Seat indices of the
// remaining players shift down, so the turn/dealer bookkeeping is adjusted to
// keep pointing at the same people. Assumes lock is held by caller.
func (r *Room) RemovePlayer(id uuid.UUID) (removed *models.Player, empty bool) {
	seat := -1
	for i, p := range r.Players {
		if p.ID == id {
			seat = i
			removed = p
			break
		}
	}
	if seat == -1 {
		return nil, len(r.Players) == 0
	}
	chooserLeft := r.Phase == PhaseAwaitingSuitChoice && seat == r.SuitChooser
	dealerLeft := seat == r.DealerIndex &&
		(r.Phase == PhaseAwaitingDealerSuit || r.Phase == PhaseAwaitingDealerPenalty)

	r.Players = append(r.Players[:seat], r.Players[seat+1:]...)
	if len(r.Players) == 0 {
		return removed, true
	}

	if r.HostID == id {
		r.HostID = r.Players[0].ID
		r.Players[0].IsHost = true
	}

	// Shift seat-indexed state down past the vacated seat.
	shifted := make(map[int]bool, len(r.SkippedSeats))
	for s := range r.SkippedSeats {
		switch {
		case s < seat:
			shifted[s] = true
		case s > seat:
			shifted[s-1] = true
		}
	}
	r.SkippedSeats = shifted
	if r.DealerIndex >= seat && r.DealerIndex > 0 {
		r.DealerIndex--
	}
	if r.SuitChooser >= seat && r.SuitChooser > 0 {
		r.SuitChooser--
	}
	if r.CurrentPlayerIndex > seat {
		r.CurrentPlayerIndex--
	}
	if r.CurrentPlayerIndex >= len(r.Players) {
		r.CurrentPlayerIndex = 0
	}

	// A prompt owed by the leaver fizzles: the card already on top keeps its
	// printed suit as the target and play resumes.
	if chooserLeft || dealerLeft {
		r.PenaltyRank = ""
		r.Phase = PhaseNormal
	}
	// Never leave the turn pointing at a skipped seat.
	if r.Started && r.Phase == PhaseNormal {
		for r.SkippedSeats[r.CurrentPlayerIndex] {
			delete(r.SkippedSeats, r.CurrentPlayerIndex)
			r.CurrentPlayerIndex = r.nextSeat(r.CurrentPlayerIndex)
		}
	}

	r.log.WithField("player", removed.Name).Info("player left")
	r.logAction(id, "player_leave", map[string]interface{}{"name": removed.Name})
	r.broadcast(Event{Type: EventPlayerLeft, Payload: map[string]interface{}{
		"players": r.playerRoster(),
		"name":    removed.Name,
	}})
	if r.Started && r.Phase != PhaseLobby {
		r.broadcastState(removed.Name + " left the game.")
	}
	return removed, false
}

// MarkDisconnected keeps the seat but detaches its connection, for mid-game
// drops that may come back with their session token. Reports whether every
// seat is now disconnected. Assumes lock is held by caller.
func (r *Room) MarkDisconnected(id uuid.UUID) bool {
	p, _ := r.playerByID(id)
	if p == nil {
		return len(r.Players) == 0
	}
	p.Connected = false
	p.Conn = nil
	r.log.WithField("player", p.Name).Info("player disconnected, seat held")
	r.broadcast(Event{Type: EventPlayerLeft, Payload: map[string]interface{}{
		"players":      r.playerRoster(),
		"name":         p.Name,
		"disconnected": true,
	}})
	for _, other := range r.Players {
		if other.Connected {
			return false
		}
	}
	return true
}

// ReattachPlayer resumes a held seat on a new connection and replays the
// current state to the returning player.
func (r *Room) ReattachPlayer(id uuid.UUID, conn *websocket.Conn) (*models.Player, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, _ := r.playerByID(id)
	if p == nil {
		return nil, reject(CodeWrongResponder, "no such seat in room %s", r.Code)
	}
	if p.Connected {
		return nil, reject(CodeNameTaken, "%s is still connected", p.Name)
	}
	p.Conn = conn
	p.Connected = true
	r.log.WithField("player", p.Name).Info("player reconnected")
	r.broadcastExcept(p, Event{Type: EventPlayerRejoined, Payload: map[string]interface{}{
		"players": r.playerRoster(),
		"name":    p.Name,
	}})
	if r.Started {
		r.sendTo(p, Event{Type: EventGameState, State: r.snapshotFor(p, "Reconnected.")})
		r.replayHistory(p)
	}
	return p, nil
}

// replayHistory streams the room's action log to a returning player so their
// client can rebuild anything missed while dark. Best effort and nil-guarded
// like the rest of the Redis path. Assumes lock is held by caller.
func (r *Room) replayHistory(p *models.Player) {
	if cache.Rdb == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		recs, err := cache.RoomActionHistory(ctx, r.Code)
		if err != nil {
			logrus.WithError(err).WithField("room", r.Code).Warn("failed reading action history")
			return
		}
		if len(recs) == 0 {
			return
		}
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if !p.Connected {
			return
		}
		r.sendTo(p, Event{Type: EventActionHistory, Payload: map[string]interface{}{
			"actions": recs,
		}})
	}()
}

// playerByID finds a seated player. Assumes lock is held by caller.
func (r *Room) playerByID(id uuid.UUID) (*models.Player, int) {
	for i, p := range r.Players {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

// playerByName finds a seated player by display name. Assumes lock is held by
// caller.
func (r *Room) playerByName(name string) (*models.Player, int) {
	for i, p := range r.Players {
		if p.Name == name {
			return p, i
		}
	}
	return nil, -1
}

// playerRoster is the public waiting-room view of the seats.
func (r *Room) playerRoster() []map[string]interface{} {
	roster := make([]map[string]interface{}, len(r.Players))
	for i, p := range r.Players {
		roster[i] = map[string]interface{}{"name": p.Name, "isHost": p.IsHost}
	}
	return roster
}

// nextSeat returns the seat `direction` steps from `from`, wrapping.
func (r *Room) nextSeat(from int) int {
	total := len(r.Players)
	return (from + r.Direction + total) % total
}

// advanceTurn moves to the next seat, consuming any skips along the way.
// The invariant that the current player is never a skipped seat holds the
// moment this returns: skips are resolved eagerly, not observed lazily.
// Assumes lock is held by caller.
func (r *Room) advanceTurn() {
	next := r.nextSeat(r.CurrentPlayerIndex)
	for r.SkippedSeats[next] {
		delete(r.SkippedSeats, next)
		next = r.nextSeat(next)
	}
	r.CurrentPlayerIndex = next
}

// sendTo delivers an event to one player if a transport is attached. Assumes
// lock is held by caller.
func (r *Room) sendTo(p *models.Player, ev Event) {
	if r.Send == nil || !p.Connected {
		return
	}
	r.Send(p, ev)
}

// broadcast delivers an event to every connected player. Assumes lock is held
// by caller.
func (r *Room) broadcast(ev Event) {
	for _, p := range r.Players {
		r.sendTo(p, ev)
	}
}

// broadcastExcept delivers an event to everyone but one player. Assumes lock
// is held by caller.
func (r *Room) broadcastExcept(skip *models.Player, ev Event) {
	for _, p := range r.Players {
		if p.ID == skip.ID {
			continue
		}
		r.sendTo(p, ev)
	}
}

// rejectPlayer sends a rejection notice to the issuer only; nobody else is
// told and no state changes. Assumes lock is held by caller.
func (r *Room) rejectPlayer(p *models.Player, rej *Rejection) {
	r.log.WithFields(logrus.Fields{"player": p.Name, "code": rej.Code}).Debug(rej.Reason)
	r.sendTo(p, Event{Type: EventInvalidPlay, Payload: map[string]interface{}{
		"code":   string(rej.Code),
		"reason": rej.Reason,
	}})
}

// Chat relays a table chat line to everyone. Empty lines are dropped; lines
// are clipped at 500 runes.
func (r *Room) Chat(fromID uuid.UUID, text string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p, _ := r.playerByID(fromID)
	if p == nil || strings.TrimSpace(text) == "" {
		return
	}
	if runes := []rune(text); len(runes) > 500 {
		text = string(runes[:500])
	}
	r.broadcast(Event{Type: EventChatMessage, Payload: map[string]interface{}{
		"from": p.Name,
		"text": text,
	}})
}

// logAction publishes an action record to the history queue. The publish is
// asynchronous and nil-guarded; a room runs fine with no Redis attached.
// Assumes lock is held by caller.
func (r *Room) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	r.actionIndex++
	if payload == nil {
		payload = map[string]interface{}{}
	}
	rec := cache.GameActionRecord{
		RoomCode:    r.Code,
		ActionIndex: r.actionIndex,
		ActorID:     actorID,
		ActionType:  actionType,
		Payload:     payload,
		Timestamp:   time.Now().UnixMilli(),
	}
	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cache.Rdb == nil {
			return
		}
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			logrus.WithError(err).WithField("room", rec.RoomCode).Warn("failed publishing action record")
		}
	}(rec)
}
