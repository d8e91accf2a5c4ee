package rules

import "kalaha/internal/domain/game"

// MoveResult tells where the last sown stone fell.
type MoveResult struct {
	LandedInOwnSide bool
	LandingPitIndex int
}

// Sow picks up every stone of active[selectedPitIndex] and drops them one by
// one into the following pits, crossing over to the other side each time the
// walk wraps around index 0. The opponent's store is skipped.
//
// The caller guarantees 0 <= selectedPitIndex < cfg.StoreIndex and a
// non-empty pit.
func Sow(active, inactive game.Side, selectedPitIndex int, cfg game.BoardConfig) MoveResult {
	hand := active[selectedPitIndex]
	active[selectedPitIndex] = 0

	pit := selectedPitIndex
	ownSide := true

	for hand > 0 {
		pit = (pit + 1) % cfg.NumberOfPits
		if pit == 0 {
			ownSide = !ownSide
		}

		if !ownSide {
			if pit == cfg.StoreIndex {
				continue
			}
			inactive[pit]++
		} else {
			active[pit]++
		}
		hand--
	}

	return MoveResult{
		LandedInOwnSide: ownSide,
		LandingPitIndex: pit,
	}
}
