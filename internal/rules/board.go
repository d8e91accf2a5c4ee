// Package rules implements the Kalaha rules: sowing, the empty pit capture,
// turn resolution and the final outcome. Everything here is a pure
// transformation over the sides it is handed; nothing is kept between calls.
package rules

import "kalaha/internal/domain/game"

// NewSide returns a freshly seeded side: every pit holds the starting stones
// and the store is empty.
func NewSide(cfg game.BoardConfig) game.Side {
	side := make(game.Side, cfg.NumberOfPits)
	for i := 0; i < cfg.StoreIndex; i++ {
		side[i] = cfg.StartingStonesPerPit
	}
	return side
}

// PlayableStones sums every pit except the store.
func PlayableStones(side game.Side, cfg game.BoardConfig) int {
	sum := 0
	for _, stones := range side[:cfg.StoreIndex] {
		sum += stones
	}
	return sum
}

// LegalPits lists the pits of side that may be selected.
func LegalPits(side game.Side, cfg game.BoardConfig) []int {
	pits := make([]int, 0, cfg.StoreIndex)
	for i := 0; i < cfg.StoreIndex; i++ {
		if side[i] > 0 {
			pits = append(pits, i)
		}
	}
	return pits
}

// collectToStore empties every playable pit of side into its own store.
func collectToStore(side game.Side, cfg game.BoardConfig) {
	side[cfg.StoreIndex] += PlayableStones(side, cfg)
	for i := 0; i < cfg.StoreIndex; i++ {
		side[i] = 0
	}
}

// TotalStones counts every stone on the board, stores included.
func TotalStones(g *game.Game) int {
	total := 0
	for _, side := range g.Board {
		for _, stones := range side {
			total += stones
		}
	}
	return total
}
