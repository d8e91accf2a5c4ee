package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

const movesTTL = 24 * time.Hour

func movesKey(gamePin string) string {
	return fmt.Sprintf("game:%s:moves", gamePin)
}

func updatesChannel(gamePin string) string {
	return fmt.Sprintf("game:%s:updates", gamePin)
}

// MoveLogRedis keeps the move history of each game in a redis list and fans
// out game updates over pub/sub.
type MoveLogRedis struct {
	client *redis.Client
	log    *zap.SugaredLogger
}

func NewMoveLogRedis(client *redis.Client, log *zap.SugaredLogger) *MoveLogRedis {
	return &MoveLogRedis{
		client: client,
		log:    log,
	}
}

func (m *MoveLogRedis) AppendMove(ctx context.Context, gamePin string, move game.Move) error {
	data, err := json.Marshal(move)
	if err != nil {
		return err
	}

	key := movesKey(gamePin)
	pipe := m.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, movesTTL)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}
	return nil
}

func (m *MoveLogRedis) Moves(ctx context.Context, gamePin string) ([]game.Move, error) {
	values, err := m.client.LRange(ctx, movesKey(gamePin), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}

	moves := make([]game.Move, 0, len(values))
	for _, v := range values {
		var move game.Move
		if err = json.Unmarshal([]byte(v), &move); err != nil {
			m.log.Errorf("skipping malformed move of game %s: %v", gamePin, err)
			continue
		}
		moves = append(moves, move)
	}
	return moves, nil
}

func (m *MoveLogRedis) DeleteMoves(ctx context.Context, gamePin string) error {
	if err := m.client.Del(ctx, movesKey(gamePin)).Err(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}
	return nil
}

func (m *MoveLogRedis) Publish(ctx context.Context, gamePin string, update game.Update) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	if err = m.client.Publish(ctx, updatesChannel(gamePin), data).Err(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}
	return nil
}

func (m *MoveLogRedis) Subscribe(ctx context.Context, gamePin string) (game.Subscription, error) {
	ps := m.client.Subscribe(ctx, updatesChannel(gamePin))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}

	sub := &redisSubscription{
		ps:   ps,
		out:  make(chan []byte),
		done: make(chan struct{}),
	}
	go sub.forward(ps.Channel())
	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func (s *redisSubscription) forward(in <-chan *redis.Message) {
	defer close(s.out)
	for msg := range in {
		select {
		case s.out <- []byte(msg.Payload):
		case <-s.done:
			return
		}
	}
}

func (s *redisSubscription) Updates() <-chan []byte {
	return s.out
}

func (s *redisSubscription) Close() error {
	s.once.Do(func() { close(s.done) })
	return s.ps.Close()
}
