// internal/ws/ws_test.go
package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avigoodman4-jpg/Dink-Game/internal/game"
	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// eventRecorder captures the events each player would have received, in place
// of real websocket writes.
type eventRecorder struct {
	mu     sync.Mutex
	events map[string][]game.Event
}

func newRecorder() *eventRecorder {
	return &eventRecorder{events: make(map[string][]game.Event)}
}

func (rec *eventRecorder) send(p *models.Player, ev game.Event) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events[p.Name] = append(rec.events[p.Name], ev)
}

func (rec *eventRecorder) count(name string) int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.events[name])
}

func (rec *eventRecorder) reset() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = make(map[string][]game.Event)
}

func testServer(t *testing.T) (*Server, *game.Registry, *eventRecorder) {
	t.Helper()
	reg := game.NewRegistry()
	s := NewServer(reg, []byte("test-secret"))
	rec := newRecorder()
	reg.ConfigureRoom = func(room *game.Room) { room.Send = rec.send }
	return s, reg, rec
}

// Every inbound action name must reach its handler: a known frame always
// produces at least one event (if only an invalidPlay back to the issuer),
// while an unrecognized type produces nothing at all.
func TestDispatchRecognizesEveryInboundActionName(t *testing.T) {
	s, reg, rec := testServer(t)
	p := models.NewPlayer("ana", nil)
	room, err := reg.CreateOrJoin("ROOM", p)
	require.NoError(t, err)

	accept := true
	cardIndex := 0
	known := []clientMessage{
		{Type: "pickDealer"},
		{Type: "startGame"},
		{Type: "playCards", CardIndices: []int{0}},
		{Type: "drawCard"},
		{Type: "chooseSuit", Suit: "hearts"},
		{Type: "dealerPenaltyChoice", Accept: &accept, CardIndex: &cardIndex},
		{Type: "declareLastCard"},
		{Type: "catchLastCard", TargetPlayerName: "ana"},
		{Type: "nextRound"},
		{Type: "chat", Message: "hello"},
	}
	for _, msg := range known {
		rec.reset()
		s.dispatch(room, p, msg)
		assert.Positive(t, rec.count("ana"), "action %q went unhandled", msg.Type)
	}

	for _, unknown := range []string{"dealerPenalty", "bogus"} {
		rec.reset()
		s.dispatch(room, p, clientMessage{Type: unknown, Accept: &accept})
		assert.Zero(t, rec.count("ana"), "type %q should not reach any handler", unknown)
	}
}

func TestDealerPenaltyChoiceFrameResolvesAFlippedFour(t *testing.T) {
	s, reg, rec := testServer(t)
	dealer := models.NewPlayer("ana", nil)
	other := models.NewPlayer("bo", nil)
	room, err := reg.CreateOrJoin("ROOM", dealer)
	require.NoError(t, err)
	_, err = reg.CreateOrJoin("ROOM", other)
	require.NoError(t, err)

	room.Mu.Lock()
	room.Started = true
	room.Phase = game.PhaseAwaitingDealerPenalty
	room.PenaltyRank = models.RankFour
	room.DealerIndex = 0
	room.CurrentPlayerIndex = 1
	room.DiscardPile = []models.Card{{Suit: models.SuitClubs, Rank: models.RankFour}}
	room.CurrentSuit = models.SuitClubs
	room.CurrentRank = models.RankFour
	room.DrawPile = []models.Card{
		{Suit: models.SuitHearts, Rank: models.RankSeven},
		{Suit: models.SuitSpades, Rank: models.RankNine},
	}
	dealer.Hand = []models.Card{{Suit: models.SuitHearts, Rank: models.RankQueen}}
	other.Hand = []models.Card{{Suit: models.SuitHearts, Rank: models.RankQueen}}
	room.Mu.Unlock()

	accept := true
	s.dispatch(room, dealer, clientMessage{Type: "dealerPenaltyChoice", Accept: &accept})

	room.Mu.Lock()
	defer room.Mu.Unlock()
	assert.Equal(t, game.PhaseNormal, room.Phase)
	assert.Len(t, dealer.Hand, 2, "accepting the flipped 4 draws one")
	assert.Positive(t, rec.count("bo"), "resolution is broadcast")
}
