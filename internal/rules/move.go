package rules

import (
	"fmt"
	"time"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

// Result describes a move that was applied.
type Result struct {
	Move     MoveResult
	Captured int
	Outcome  Outcome
}

// Validate checks that playerPin may select pit in g. It never mutates g.
func Validate(g *game.Game, playerPin string, pit int, cfg game.BoardConfig) error {
	if !g.HasPlayer(playerPin) {
		return errs.ErrUnauthorized
	}
	if g.IsFinished() {
		return errs.ErrGameFinished
	}
	if !g.IsStarted() {
		return errs.ErrGameNotStarted
	}
	if g.TurnPlayerPin != playerPin {
		return errs.ErrNotTurnPlayer
	}
	if pit < 0 || pit >= cfg.StoreIndex {
		return fmt.Errorf("%w: %w: %d not in [0, %d)", errs.ErrInvalidMove, errs.ErrPitOutOfRange, pit, cfg.StoreIndex)
	}
	for _, side := range g.Board {
		if len(side) != cfg.NumberOfPits {
			return fmt.Errorf("%w: board does not match %d pits per side", errs.ErrInvalidConfig, cfg.NumberOfPits)
		}
	}
	if g.Side(playerPin)[pit] == 0 {
		return fmt.Errorf("%w: %w: %d", errs.ErrInvalidMove, errs.ErrEmptyPit, pit)
	}
	return nil
}

// Play validates and applies one move of playerPin. A rejected move leaves g
// untouched. A move that would change the stone count is reported as
// ErrActionFailed with g already modified, so callers play on a clone.
func Play(g *game.Game, playerPin string, pit int, cfg game.BoardConfig, now time.Time) (Result, error) {
	if err := Validate(g, playerPin, pit, cfg); err != nil {
		return Result{}, err
	}

	seat, _ := g.SeatOf(playerPin)
	active := g.Board[seat]
	inactive := g.Board[seat.Other()]
	total := TotalStones(g)

	res := Sow(active, inactive, pit, cfg)

	captured := 0
	if CaptureApplies(active, res, cfg) {
		captured = Capture(active, inactive, res.LandingPitIndex, cfg)
	}

	outcome := Resolve(g, res, cfg, now)
	if after := TotalStones(g); after != total {
		return Result{}, fmt.Errorf("%w: stone count changed from %d to %d", errs.ErrActionFailed, total, after)
	}

	return Result{
		Move:     res,
		Captured: captured,
		Outcome:  outcome,
	}, nil
}
