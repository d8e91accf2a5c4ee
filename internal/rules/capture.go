package rules

import "kalaha/internal/domain/game"

// CaptureApplies reports whether the last stone landed alone in a playable pit
// on the mover's side. It must be checked right after sowing.
func CaptureApplies(active game.Side, res MoveResult, cfg game.BoardConfig) bool {
	return res.LandedInOwnSide &&
		res.LandingPitIndex != cfg.StoreIndex &&
		active[res.LandingPitIndex] == 1
}

// MirrorPit is the opponent pit facing pit.
func MirrorPit(pit int, cfg game.BoardConfig) int {
	return cfg.StoreIndex - 1 - pit
}

// Capture moves the stone in the landing pit and everything in the facing
// opponent pit into the active store. It returns the number of stones moved.
func Capture(active, inactive game.Side, landingPitIndex int, cfg game.BoardConfig) int {
	mirror := MirrorPit(landingPitIndex, cfg)
	collected := inactive[mirror] + active[landingPitIndex]

	inactive[mirror] = 0
	active[landingPitIndex] = 0
	active[cfg.StoreIndex] += collected

	return collected
}
