package repository

import (
	"context"
	"fmt"
	"sync"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

// GameMapStorage is an in-process GameMongoStorage replacement. It copies
// games in and out so callers never share memory with the store.
type GameMapStorage struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

func NewGameMapStorage() *GameMapStorage {
	return &GameMapStorage{games: make(map[string]*game.Game)}
}

func (s *GameMapStorage) PinExists(_ context.Context, pin string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[pin]
	return ok, nil
}

func (s *GameMapStorage) CreateGame(_ context.Context, gameData *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[gameData.Pin]; ok {
		return fmt.Errorf("%w: pin %s is taken", errs.ErrConflict, gameData.Pin)
	}
	s.games[gameData.Pin] = gameData.Clone()
	return nil
}

func (s *GameMapStorage) GetGameByPin(_ context.Context, pin string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found, ok := s.games[pin]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrGameNotFound, pin)
	}
	return found.Clone(), nil
}

func (s *GameMapStorage) SaveGame(_ context.Context, gameData *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.games[gameData.Pin]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameData.Pin)
	}
	if stored.Version != gameData.Version {
		return fmt.Errorf("%w: %s", errs.ErrConflict, gameData.Pin)
	}
	gameData.Version++
	s.games[gameData.Pin] = gameData.Clone()
	return nil
}

func (s *GameMapStorage) DeleteGame(_ context.Context, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[pin]; !ok {
		return fmt.Errorf("%w: %s", errs.ErrGameNotFound, pin)
	}
	delete(s.games, pin)
	return nil
}
