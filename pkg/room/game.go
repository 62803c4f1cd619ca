package room

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrGameFull is returned when both seats are already taken
var ErrGameFull = errors.New("game already has two players")

// ErrGameNotFound is returned when the game uuid is unknown
var ErrGameNotFound = errors.New("game not found")

// player ids are unique across all games hosted by this process
var nextPlayerID int64

// Game is one hosted game room. The first two players to take a seat play;
// anyone else connecting is a spectator.
type Game struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	mu        sync.Mutex
	playerIDs []int64
}

// Seat assigns the next free seat and returns the new player ID
func (g *Game) Seat() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.playerIDs) >= 2 {
		return 0, ErrGameFull
	}

	id := atomic.AddInt64(&nextPlayerID, 1)
	g.playerIDs = append(g.playerIDs, id)
	return id, nil
}

// PlayerIDs returns the seated players in seat order
func (g *Game) PlayerIDs() []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]int64, len(g.playerIDs))
	copy(ids, g.playerIDs)
	return ids
}

// HasPlayer returns true if the player holds a seat
func (g *Game) HasPlayer(playerID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range g.playerIDs {
		if id == playerID {
			return true
		}
	}

	return false
}
