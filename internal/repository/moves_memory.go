package repository

import (
	"context"
	"encoding/json"
	"sync"

	"kalaha/internal/domain/game"
)

const memoryUpdatesBuffer = 16

// MoveLogMap is the in-process MoveLogRedis. Slow subscribers miss updates
// instead of blocking publishers.
type MoveLogMap struct {
	mu          sync.Mutex
	moves       map[string][]game.Move
	subscribers map[string]map[*memorySubscription]struct{}
}

func NewMoveLogMap() *MoveLogMap {
	return &MoveLogMap{
		moves:       make(map[string][]game.Move),
		subscribers: make(map[string]map[*memorySubscription]struct{}),
	}
}

func (m *MoveLogMap) AppendMove(_ context.Context, gamePin string, move game.Move) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves[gamePin] = append(m.moves[gamePin], move)
	return nil
}

func (m *MoveLogMap) Moves(_ context.Context, gamePin string) ([]game.Move, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]game.Move, len(m.moves[gamePin]))
	copy(out, m.moves[gamePin])
	return out, nil
}

func (m *MoveLogMap) DeleteMoves(_ context.Context, gamePin string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.moves, gamePin)
	return nil
}

func (m *MoveLogMap) Publish(_ context.Context, gamePin string, update game.Update) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for sub := range m.subscribers[gamePin] {
		select {
		case sub.ch <- data:
		default:
		}
	}
	return nil
}

func (m *MoveLogMap) Subscribe(_ context.Context, gamePin string) (game.Subscription, error) {
	sub := &memorySubscription{
		log:     m,
		gamePin: gamePin,
		ch:      make(chan []byte, memoryUpdatesBuffer),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subscribers[gamePin] == nil {
		m.subscribers[gamePin] = make(map[*memorySubscription]struct{})
	}
	m.subscribers[gamePin][sub] = struct{}{}
	return sub, nil
}

type memorySubscription struct {
	log     *MoveLogMap
	gamePin string
	ch      chan []byte
	closed  bool
}

func (s *memorySubscription) Updates() <-chan []byte {
	return s.ch
}

func (s *memorySubscription) Close() error {
	s.log.mu.Lock()
	defer s.log.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	delete(s.log.subscribers[s.gamePin], s)
	if len(s.log.subscribers[s.gamePin]) == 0 {
		delete(s.log.subscribers, s.gamePin)
	}
	close(s.ch)
	return nil
}
