package rules

import (
	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

// Winner compares both stores of a finished game. It returns nil on a draw.
func Winner(g *game.Game, cfg game.BoardConfig) (*string, error) {
	if !g.IsFinished() {
		return nil, errs.ErrGameNotFinished
	}

	turnStore := g.Side(g.TurnPlayerPin)[cfg.StoreIndex]
	opponentStore := g.Side(g.OpponentPlayerPin)[cfg.StoreIndex]

	var winner string
	switch {
	case turnStore > opponentStore:
		winner = g.TurnPlayerPin
	case turnStore < opponentStore:
		winner = g.OpponentPlayerPin
	default:
		return nil, nil
	}
	return &winner, nil
}
