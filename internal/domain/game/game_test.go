package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "kalaha/internal/errors"
)

func TestBoardConfigValidate(t *testing.T) {
	assert.NoError(t, NewBoardConfig(7, 4).Validate())
	assert.NoError(t, NewBoardConfig(2, 0).Validate())

	for _, cfg := range []BoardConfig{
		NewBoardConfig(1, 4),
		NewBoardConfig(7, -1),
		{NumberOfPits: 7, StoreIndex: 5, StartingStonesPerPit: 4},
	} {
		assert.ErrorIs(t, cfg.Validate(), errs.ErrInvalidConfig, "%+v", cfg)
	}
}

func TestGameSeats(t *testing.T) {
	g := &Game{}
	g.Players[PlayerOne] = Player{Pin: "P1-000001", Name: "Alice"}
	g.Players[PlayerTwo] = Player{Pin: "P2-000002", Name: "Bot", Bot: true}
	g.Board[PlayerOne] = Side{4, 4, 4, 4, 4, 4, 0}

	seat, ok := g.SeatOf("P2-000002")
	require.True(t, ok)
	assert.Equal(t, PlayerTwo, seat)
	assert.Equal(t, PlayerOne, seat.Other())

	_, ok = g.SeatOf("")
	assert.False(t, ok)
	assert.False(t, g.HasPlayer("P1-999999"))
	assert.Nil(t, g.Side("P1-999999"))

	botSeat, ok := g.BotSeat()
	require.True(t, ok)
	assert.Equal(t, PlayerTwo, botSeat)

	assert.Len(t, g.Boards(), 1)
}

func TestGameClone(t *testing.T) {
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	g := &Game{Pin: "G-000001", StartedAt: &started}
	g.Board[PlayerOne] = Side{1, 2, 3}
	g.Board[PlayerTwo] = Side{4, 5, 6}

	c := g.Clone()
	require.Equal(t, g, c)

	c.Board[PlayerOne][0] = 9
	*c.StartedAt = started.Add(time.Hour)

	assert.Equal(t, 1, g.Board[PlayerOne][0])
	assert.Equal(t, started, *g.StartedAt)
	assert.Nil(t, c.FinishedAt)
}
