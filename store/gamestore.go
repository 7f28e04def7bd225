package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/doomlings/engine"
	"github.com/minaorangina/doomlings/players"
	"github.com/minaorangina/doomlings/protocol"
)

var (
	ErrUnknownGameID           = errors.New("unknown game ID")
	ErrUnknownPlayerID         = errors.New("unknown player ID")
	ErrFnUnknownInactiveGameID = func(gameID string) error {
		return fmt.Errorf("pending game with id \"%s\" does not exist", gameID)
	}
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrDuplicateGameID    = errors.New("game id already exists")
)

type GameStore interface {
	FindGame(gameID string) *engine.GameEngine
	FindActiveGame(gameID string) *engine.GameEngine
	FindInactiveGame(gameID string) *engine.GameEngine
	FindPendingPlayer(gameID, playerID string) *protocol.Player
	AddInactiveGame(ge *engine.GameEngine) error
	AddPendingPlayer(gameID, playerID, name string) error
	AddPlayerToGame(gameID string, player players.Player) error
	RemoveGame(gameID string)
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu             sync.RWMutex
	Games          map[string]*engine.GameEngine
	PendingPlayers map[string][]protocol.Player
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		Games:          map[string]*engine.GameEngine{},
		PendingPlayers: map[string][]protocol.Player{},
	}
}

func (s *InMemoryGameStore) FindGame(ID string) *engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Games[ID]
}

// FindActiveGame returns a game that has started.
func (s *InMemoryGameStore) FindActiveGame(ID string) *engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() == engine.Idle {
		return nil
	}
	return game
}

// FindInactiveGame returns a game still in its lobby.
func (s *InMemoryGameStore) FindInactiveGame(ID string) *engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() != engine.Idle {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, info := range s.PendingPlayers[gameID] {
		if info.PlayerID == playerID {
			found := info
			return &found
		}
	}
	return nil
}

func (s *InMemoryGameStore) AddInactiveGame(game *engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, game.ID())
	}
	s.Games[game.ID()] = game
	return nil
}

// AddPendingPlayer adds the information from which to construct a Player in the future.
// If the target Game does not exist, it will fail.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}
	if game.PlayState() != engine.Idle {
		return ErrGameAlreadyStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.PendingPlayers[gameID] = append(s.PendingPlayers[gameID], protocol.Player{PlayerID: playerID, Name: name})
	return nil
}

// AddPlayerToGame connects a player to a game. Seated players may
// reconnect after the game has started.
func (s *InMemoryGameStore) AddPlayerToGame(gameID string, player players.Player) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrUnknownGameID
	}
	if game.PlayState() != engine.Idle && s.FindPendingPlayer(gameID, player.ID()) == nil {
		return ErrGameAlreadyStarted
	}
	return game.AddPlayer(player)
}

// RemoveGame stops the game and forgets it.
func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	game := s.Games[gameID]
	delete(s.Games, gameID)
	delete(s.PendingPlayers, gameID)
	s.mu.Unlock()

	if game != nil {
		game.Stop()
	}
}
