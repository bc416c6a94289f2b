// internal/game/helpers_test.go
package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// eventRecorder captures every event each player would have received.
type eventRecorder struct {
	mu     sync.Mutex
	events map[string][]Event
}

func newRecorder() *eventRecorder {
	return &eventRecorder{events: make(map[string][]Event)}
}

func (rec *eventRecorder) send(p *models.Player, ev Event) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events[p.Name] = append(rec.events[p.Name], ev)
}

// byType returns every event of the given type delivered to the named player.
func (rec *eventRecorder) byType(name string, t EventType) []Event {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	var out []Event
	for _, ev := range rec.events[name] {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (rec *eventRecorder) lastOfType(name string, t EventType) (Event, bool) {
	evs := rec.byType(name, t)
	if len(evs) == 0 {
		return Event{}, false
	}
	return evs[len(evs)-1], true
}

func (rec *eventRecorder) reset() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = make(map[string][]Event)
}

// newTestRoom builds a room with the given players seated, a deterministic
// rng, fast timers, and a recorder attached.
func newTestRoom(t *testing.T, names ...string) (*Room, *eventRecorder) {
	t.Helper()
	rec := newRecorder()
	r := NewRoom("TEST")
	r.Send = rec.send
	// Inert by default so a timer never fires mid-assertion; tests that
	// exercise the timers shorten these explicitly.
	r.handDelay = time.Hour
	r.catchWindow = time.Hour
	r.rng = rand.New(rand.NewSource(7))

	r.Mu.Lock()
	for _, name := range names {
		require.NoError(t, r.AddPlayer(models.NewPlayer(name, nil)))
	}
	r.Mu.Unlock()
	return r, rec
}

// rig mutates room state under the lock, for setting up mid-hand scenarios.
func rig(r *Room, f func(*Room)) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	f(r)
}

// midHand puts the room into a minimal in-progress hand: every player holds
// the given hand sizes of filler cards, seat `turn` is up, and the discard
// pile holds exactly `top`. Filler cards are 7s, which carry no effect.
func midHand(r *Room, turn int, top models.Card, handSizes ...int) {
	rig(r, func(r *Room) {
		r.Started = true
		r.Phase = PhaseNormal
		r.HandNumber = 1
		r.DealerIndex = 0
		r.CurrentPlayerIndex = turn
		r.Direction = 1
		r.SkippedSeats = make(map[int]bool)
		r.Pending = EffectNone
		r.PendingPickup = 0
		r.AceCarry = 0
		r.LastCardDeclared = false
		r.DiscardPile = []models.Card{top}
		r.CurrentSuit = top.Suit
		r.CurrentRank = top.Rank
		r.DrawPile = nil
		for i := 0; i < 30; i++ {
			r.DrawPile = append(r.DrawPile, models.Card{Suit: models.SuitClubs, Rank: models.RankSeven})
		}
		for i, p := range r.Players {
			n := 5
			if i < len(handSizes) {
				n = handSizes[i]
			}
			p.Hand = nil
			for j := 0; j < n; j++ {
				p.Hand = append(p.Hand, models.Card{Suit: models.SuitSpades, Rank: models.RankSeven})
			}
		}
	})
}

// setHand replaces one player's hand.
func setHand(r *Room, seat int, cards ...models.Card) {
	rig(r, func(r *Room) {
		r.Players[seat].Hand = append([]models.Card{}, cards...)
	})
}

func card(s models.Suit, rk models.Rank) models.Card {
	return models.Card{Suit: s, Rank: rk}
}

// countCards sums every card in the room.
func countCards(r *Room) int {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	total := len(r.DrawPile) + len(r.DiscardPile)
	for _, p := range r.Players {
		total += len(p.Hand)
	}
	return total
}

func handLen(r *Room, seat int) int {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return len(r.Players[seat].Hand)
}

func currentSeat(r *Room) int {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.CurrentPlayerIndex
}
