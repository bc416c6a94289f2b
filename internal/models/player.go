// internal/models/player.go
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is one seat in a room. Hand order is acquisition order; sorting is a
// presentation concern left to clients.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	IsHost    bool            `json:"isHost"`
	Hand      []Card          `json:"-"`
	HandsWon  int             `json:"handsWon"`
	Score     int             `json:"score"`
	Connected bool            `json:"connected"`
	Conn      *websocket.Conn `json:"-"`
}

// NewPlayer creates a seated player with a fresh identity.
func NewPlayer(name string, conn *websocket.Conn) *Player {
	return &Player{
		ID:        uuid.New(),
		Name:      name,
		Hand:      []Card{},
		Connected: true,
		Conn:      conn,
	}
}

// HasRank reports whether the player holds at least one card of the given
// rank, returning the first matching hand index.
func (p *Player) HasRank(rank Rank) (int, bool) {
	for i, c := range p.Hand {
		if c.Rank == rank {
			return i, true
		}
	}
	return -1, false
}
