// internal/game/deal_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

func TestHandSizesShrinkAcrossTheRound(t *testing.T) {
	want := []int{7, 6, 5, 4, 3, 2, 1}
	for hand := 1; hand <= HandsPerRound; hand++ {
		assert.Equal(t, want[hand-1], handSize(hand))
	}
}

func TestDealHandConservesTheDeck(t *testing.T) {
	for _, players := range []int{2, 3, 5} {
		names := []string{"ana", "bo", "cy", "di", "ed"}[:players]
		r, _ := newTestRoom(t, names...)
		for hand := 1; hand <= HandsPerRound; hand++ {
			rig(r, func(r *Room) {
				r.HandNumber = hand
				r.dealHand()
			})
			assert.Equal(t, DeckSize, countCards(r), "%d players, hand %d", players, hand)
			for seat := range names {
				assert.Equal(t, handSize(hand), handLen(r, seat))
			}
		}
	}
}

func TestStartGameChecks(t *testing.T) {
	r, rec := newTestRoom(t, "ana")

	require.NoError(t, r.StartGame(r.HostID))
	ev, got := rec.lastOfType("ana", EventInvalidPlay)
	require.True(t, got)
	assert.Equal(t, string(CodeNotEnoughPlayers), ev.Payload["code"])
	assert.False(t, r.Started)

	rig(r, func(r *Room) {
		require.NoError(t, r.AddPlayer(models.NewPlayer("bo", nil)))
	})

	require.NoError(t, r.StartGame(r.Players[1].ID))
	ev, got = rec.lastOfType("bo", EventInvalidPlay)
	require.True(t, got)
	assert.Equal(t, string(CodeWrongResponder), ev.Payload["code"])

	require.NoError(t, r.StartGame(r.HostID))
	assert.True(t, r.Started)
	started := rec.byType("bo", EventGameStarted)
	require.Len(t, started, 1)
	require.NotNil(t, started[0].State)
	assert.Len(t, started[0].State.Hand, 7)
	assert.Equal(t, "bo", started[0].State.MyName)

	// Other players' cards are counts only.
	for _, ps := range started[0].State.Players {
		assert.Equal(t, 7, ps.CardCount)
	}
}

func flipRoom(t *testing.T, flip models.Card, names ...string) *Room {
	t.Helper()
	r, _ := newTestRoom(t, names...)
	rig(r, func(r *Room) {
		r.Started = true
		r.DealerIndex = 0
		r.SkippedSeats = make(map[int]bool)
		r.Direction = 1
		r.Phase = PhaseNormal
		r.DiscardPile = []models.Card{flip}
		r.CurrentSuit = flip.Suit
		r.CurrentRank = flip.Rank
		r.AceCarry = 0
		r.PenaltyRank = ""
		r.Pending = EffectNone
		r.PendingPickup = 0
		r.resolveFlip(flip)
		r.setFirstPlayer()
	})
	return r
}

func TestResolveFlipTwoArmsDink(t *testing.T) {
	r := flipRoom(t, card(models.SuitHearts, models.RankTwo), "ana", "bo", "cy")
	assert.Equal(t, EffectDink, r.Pending)
	assert.Equal(t, 2, r.PendingPickup)
	assert.Equal(t, 1, currentSeat(r))
}

func TestResolveFlipNineReversesWithThreePlus(t *testing.T) {
	r := flipRoom(t, card(models.SuitHearts, models.RankNine), "ana", "bo", "cy")
	assert.Equal(t, -1, r.Direction)
	// Dealer 0, reversed: first player is the seat before the dealer.
	assert.Equal(t, 2, currentSeat(r))

	r = flipRoom(t, card(models.SuitHearts, models.RankNine), "ana", "bo")
	assert.Equal(t, 1, r.Direction)
}

func TestResolveFlipTenSwapsToCrossColor(t *testing.T) {
	r := flipRoom(t, card(models.SuitHearts, models.RankTen), "ana", "bo", "cy")
	assert.Equal(t, models.SuitDiamonds, r.CurrentSuit)
	assert.Equal(t, models.RankTen, r.CurrentRank)
}

func TestResolveFlipJackSkipsFirstPlayer(t *testing.T) {
	// 3 players: the seat after the dealer is skipped, seat 2 opens.
	r := flipRoom(t, card(models.SuitHearts, models.RankJack), "ana", "bo", "cy")
	assert.Equal(t, 2, currentSeat(r))
	assert.Empty(t, r.SkippedSeats, "skip consumed eagerly")

	// 2 players: the dealer's own first turn is marked skipped instead; the
	// non-dealer still opens.
	r = flipRoom(t, card(models.SuitHearts, models.RankJack), "ana", "bo")
	assert.Equal(t, 1, currentSeat(r))
	assert.True(t, r.SkippedSeats[0])
}

func TestResolveFlipWildGatesOnDealerSuit(t *testing.T) {
	for _, rank := range []models.Rank{models.RankEight, models.RankThree} {
		r := flipRoom(t, card(models.SuitSpades, rank), "ana", "bo", "cy")
		assert.Equal(t, PhaseAwaitingDealerSuit, r.Phase)
		assert.Equal(t, models.Rank(""), r.CurrentRank, "wild flip is never a rank target")
		assert.Equal(t, models.SuitSpades, r.CurrentSuit)
	}
}

func TestResolveFlipAceAndFourPromptTheDealer(t *testing.T) {
	r := flipRoom(t, card(models.SuitClubs, models.RankAce), "ana", "bo", "cy")
	assert.Equal(t, PhaseAwaitingDealerPenalty, r.Phase)
	assert.Equal(t, models.RankAce, r.PenaltyRank)
	assert.Equal(t, 1, r.AceCarry)

	r = flipRoom(t, card(models.SuitClubs, models.RankFour), "ana", "bo", "cy")
	assert.Equal(t, PhaseAwaitingDealerPenalty, r.Phase)
	assert.Equal(t, models.RankFour, r.PenaltyRank)
	assert.Equal(t, 0, r.AceCarry)
}
