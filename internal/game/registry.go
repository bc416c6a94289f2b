// internal/game/registry.go
package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avigoodman4-jpg/Dink-Game/internal/models"
)

// DisconnectGrace is how long a mid-game dropped seat is held for a
// session-token reconnect before it is removed for good.
const DisconnectGrace = 60 * time.Second

// Registry maps room codes to live rooms. Lookup-or-create of a code is
// atomic; per-room mutation is then serialized by the room's own lock. Lock
// order is registry then room, never the reverse.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room

	// ConfigureRoom, if set, runs on every freshly created room before any
	// player is seated. The transport layer uses it to attach its send hook.
	ConfigureRoom func(*Room)

	// Grace before a dark mid-game seat is evicted. Overridable in tests.
	Grace time.Duration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room), Grace: DisconnectGrace}
}

// CreateOrJoin seats the player in the room for the given code, creating the
// room if the code is new. A rejected join of a new code leaves no room
// behind.
func (reg *Registry) CreateOrJoin(code string, p *models.Player) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]
	if !ok {
		room = NewRoom(code)
		if reg.ConfigureRoom != nil {
			reg.ConfigureRoom(room)
		}
	}

	room.Mu.Lock()
	err := room.AddPlayer(p)
	room.Mu.Unlock()
	if err != nil {
		return nil, err
	}
	if !ok {
		reg.rooms[code] = room
	}
	return room, nil
}

// Get returns the live room for a code, or nil.
func (reg *Registry) Get(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[code]
}

// HandleDisconnect prunes a dropped connection. Before the game starts the
// seat is removed outright; mid-game the seat is held for a session-token
// reconnect. A room with no seats, or no connected seats, is deleted.
func (reg *Registry) HandleDisconnect(code string, id uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]
	if !ok {
		return
	}
	room.Mu.Lock()
	var empty bool
	if room.Started {
		empty = room.MarkDisconnected(id)
		if !empty {
			reg.scheduleEviction(code, id)
		}
	} else {
		_, empty = room.RemovePlayer(id)
	}
	room.Mu.Unlock()
	if empty {
		delete(reg.rooms, code)
	}
}

// scheduleEviction removes a dark seat for good once the reconnect grace
// expires, so a vanished player cannot stall the turn (or the host role)
// forever. The Connected flag is the revalidation: a seat that came back, or
// was already removed, is left alone. Assumes the registry lock is held by
// the caller arming the timer, not when it fires.
func (reg *Registry) scheduleEviction(code string, id uuid.UUID) {
	time.AfterFunc(reg.Grace, func() {
		reg.mu.Lock()
		defer reg.mu.Unlock()
		room, ok := reg.rooms[code]
		if !ok {
			return
		}
		room.Mu.Lock()
		var empty bool
		if p, _ := room.playerByID(id); p != nil && !p.Connected {
			_, empty = room.RemovePlayer(id)
		}
		room.Mu.Unlock()
		if empty {
			delete(reg.rooms, code)
		}
	})
}

// RemovePlayer unseats a player from their room and deletes the room once its
// last seat empties.
func (reg *Registry) RemovePlayer(code string, id uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]
	if !ok {
		return
	}
	room.Mu.Lock()
	_, empty := room.RemovePlayer(id)
	room.Mu.Unlock()
	if empty {
		delete(reg.rooms, code)
	}
}

// Count reports the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
