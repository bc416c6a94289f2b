// internal/game/dealer_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

func TestFlipWinnersTiesOnHighestRank(t *testing.T) {
	flips := []PlayerFlip{
		{Name: "ana", Card: card(models.SuitHearts, models.RankKing)},
		{Name: "bo", Card: card(models.SuitClubs, models.RankKing)},
		{Name: "cy", Card: card(models.SuitSpades, models.RankFour)},
	}
	assert.Equal(t, []string{"ana", "bo"}, flipWinners(flips))
}

func TestFlipForDealerAlwaysSettlesOnOneWinner(t *testing.T) {
	names := []string{"ana", "bo", "cy", "di"}
	for seed := int64(0); seed < 50; seed++ {
		flips, winner := flipForDealer(names, rand.New(rand.NewSource(seed)))
		require.Len(t, flips, len(names))

		// The winner's final flip strictly beats every other final flip.
		var winnerValue int
		for _, f := range flips {
			if f.Name == winner {
				winnerValue = f.Card.Rank.Value()
			}
		}
		ties := 0
		for _, f := range flips {
			if f.Card.Rank.Value() == winnerValue {
				ties++
			}
		}
		assert.Equal(t, 1, ties, "seed %d: winner %s not unique at the top", seed, winner)
	}
}

func TestPickDealerIsHostOnly(t *testing.T) {
	r, rec := newTestRoom(t, "ana", "bo", "cy")

	require.NoError(t, r.PickDealer(r.Players[1].ID))
	_, got := rec.lastOfType("bo", EventInvalidPlay)
	assert.True(t, got, "non-host flip should be rejected")
	assert.False(t, r.DealerPicked)

	require.NoError(t, r.PickDealer(r.HostID))
	assert.True(t, r.DealerPicked)
	ev, got := rec.lastOfType("cy", EventCardFlipResult)
	require.True(t, got, "flip result should be broadcast")
	require.NotNil(t, ev.Flip)
	assert.Len(t, ev.Flip.Flips, 3)
	assert.Equal(t, r.Players[ev.Flip.DealerIndex].Name, ev.Flip.WinnerName)
}

func TestPickDealerRejectedMidGame(t *testing.T) {
	r, rec := newTestRoom(t, "ana", "bo")
	rig(r, func(r *Room) { r.Started = true })

	require.NoError(t, r.PickDealer(r.HostID))
	ev, got := rec.lastOfType("ana", EventInvalidPlay)
	require.True(t, got)
	assert.Equal(t, string(CodeGameInProgress), ev.Payload["code"])
}
