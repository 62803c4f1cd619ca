package room

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// GameRepository stores hosted games
type GameRepository interface {
	// Create creates a new game with the given display name
	Create(name string) (*Game, error)

	// Get returns the game by uuid, or ErrGameNotFound
	Get(uuid string) (*Game, error)
}

type memoryRepository struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewGameRepository returns an in-memory game repository
func NewGameRepository() GameRepository {
	return &memoryRepository{
		games: make(map[string]*Game),
	}
}

func (m *memoryRepository) Create(name string) (*Game, error) {
	game := &Game{
		UUID:      uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.games[game.UUID] = game
	m.mu.Unlock()

	return game, nil
}

func (m *memoryRepository) Get(uuid string) (*Game, error) {
	m.mu.RLock()
	game, found := m.games[uuid]
	m.mu.RUnlock()

	if !found {
		return nil, ErrGameNotFound
	}

	return game, nil
}
