package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

func newStoredGame() *game.Game {
	return &game.Game{
		ID:            "id-1",
		Pin:           "G-000001",
		Players:       [2]game.Player{{Pin: "P1-000001", Name: "one"}},
		Board:         [2]game.Side{{4, 4, 4, 4, 4, 4, 0}},
		TurnPlayerPin: "P1-000001",
		CreatedAt:     time.Now(),
	}
}

func TestGameMapStorageLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewGameMapStorage()
	g := newStoredGame()

	require.NoError(t, s.CreateGame(ctx, g))
	assert.ErrorIs(t, s.CreateGame(ctx, g), errs.ErrConflict)

	exists, err := s.PinExists(ctx, g.Pin)
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := s.GetGameByPin(ctx, g.Pin)
	require.NoError(t, err)
	assert.Equal(t, g, loaded)

	loaded.Board[0][0] = 99
	again, err := s.GetGameByPin(ctx, g.Pin)
	require.NoError(t, err)
	assert.Equal(t, 4, again.Board[0][0], "stored game must not alias returned copies")

	require.NoError(t, s.SaveGame(ctx, loaded))
	assert.Equal(t, 1, loaded.Version)

	assert.ErrorIs(t, s.SaveGame(ctx, again), errs.ErrConflict, "stale version")

	require.NoError(t, s.DeleteGame(ctx, g.Pin))
	_, err = s.GetGameByPin(ctx, g.Pin)
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
	assert.ErrorIs(t, s.DeleteGame(ctx, g.Pin), errs.ErrGameNotFound)
	assert.ErrorIs(t, s.SaveGame(ctx, loaded), errs.ErrGameNotFound)
}
