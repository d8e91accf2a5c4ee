package rules

import (
	"time"

	"kalaha/internal/domain/game"
)

// Outcome is the state a game is left in after a move.
type Outcome int

const (
	// Continues means the mover keeps the turn.
	Continues Outcome = iota
	TurnPasses
	Finished
)

func (o Outcome) String() string {
	switch o {
	case Continues:
		return "continues"
	case TurnPasses:
		return "turn_passes"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Resolve decides what happens after the sowing (and any capture) of a move.
// An exhausted mover side ends the game even if the last stone reached the
// mover's store; in that case the opponent's remaining stones go to the
// opponent's own store.
func Resolve(g *game.Game, res MoveResult, cfg game.BoardConfig, now time.Time) Outcome {
	active := g.Side(g.TurnPlayerPin)

	if PlayableStones(active, cfg) == 0 {
		collectToStore(g.Side(g.OpponentPlayerPin), cfg)
		g.FinishedAt = &now
		return Finished
	}

	if res.LandedInOwnSide && res.LandingPitIndex == cfg.StoreIndex {
		return Continues
	}

	g.TurnPlayerPin, g.OpponentPlayerPin = g.OpponentPlayerPin, g.TurnPlayerPin
	return TurnPasses
}
