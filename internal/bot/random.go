// Package bot holds the non-human player. It has no strategy: it picks one of
// the legal pits uniformly at random.
package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
	"kalaha/internal/rules"
)

const Name = "Bot"

// RandomPicker is safe for concurrent use.
type RandomPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomPicker uses rnd as its source, or a time seeded one when rnd is nil.
func NewRandomPicker(rnd *rand.Rand) *RandomPicker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomPicker{rnd: rnd}
}

func (p *RandomPicker) PickPit(_ context.Context, side game.Side, cfg game.BoardConfig) (int, error) {
	if len(side) != cfg.NumberOfPits {
		return 0, fmt.Errorf("%w: side has %d pits, want %d", errs.ErrInvalidInput, len(side), cfg.NumberOfPits)
	}

	legal := rules.LegalPits(side, cfg)
	if len(legal) == 0 {
		return 0, fmt.Errorf("%w: no stones left to sow", errs.ErrInvalidMove)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return legal[p.rnd.Intn(len(legal))], nil
}
