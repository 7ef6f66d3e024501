package gamemaster

import (
	"errors"
	"reversi/game"
	"sync"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// Store keeps game states by id.
type Store interface {
	Create(gs *game.GameState) (string, error)
	Get(id string) (*game.GameState, error)
	Update(id string, gs *game.GameState) error
}

type memoryStore struct {
	sync.RWMutex
	games map[string]*game.GameState
}

// NewMemoryStore returns a process-local store. Games live until the process
// exits.
func NewMemoryStore() Store {
	return &memoryStore{games: make(map[string]*game.GameState)}
}

func (s *memoryStore) Create(gs *game.GameState) (string, error) {
	id := uuid.NewString()

	s.Lock()
	defer s.Unlock()
	s.games[id] = gs
	return id, nil
}

func (s *memoryStore) Get(id string) (*game.GameState, error) {
	s.RLock()
	defer s.RUnlock()

	gs, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return gs, nil
}

func (s *memoryStore) Update(id string, gs *game.GameState) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.games[id]; !ok {
		return ErrGameNotFound
	}
	s.games[id] = gs
	return nil
}
