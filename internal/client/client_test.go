package client

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"kalaha/internal/bot"
	gamedelivery "kalaha/internal/delivery/game"
	"kalaha/internal/domain/game"
	"kalaha/internal/repository"
	gameuc "kalaha/internal/usecase/game"
)

func newClient(t *testing.T) *Client {
	t.Helper()

	log := zaptest.NewLogger(t).Sugar()
	uc := gameuc.NewGameUseCase(game.NewBoardConfig(7, 4), repository.NewGameMapStorage(), repository.NewMoveLogMap(),
		bot.NewRandomPicker(rand.New(rand.NewSource(2))), log)

	r := chi.NewRouter()
	gamedelivery.NewGameHandler(log, uc).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", srv.Client())
}

func TestClientPlaysAgainstBot(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	cfg, err := c.Configs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.NumberOfPits)

	created, err := c.CreateGame(ctx, "Alice", true)
	require.NoError(t, err)

	res, err := c.MakeMove(ctx, created.GamePin, created.TurnPlayerPin, 2)
	require.NoError(t, err)
	assert.True(t, res.WonAnotherMove)
	assert.False(t, res.Finished)
	assert.Equal(t, game.Side{4, 4, 0, 5, 5, 5, 1}, res.Board[0])

	res, err = c.MakeMove(ctx, created.GamePin, created.TurnPlayerPin, 5)
	require.NoError(t, err)
	assert.False(t, res.WonAnotherMove)

	res, err = c.BotMove(ctx, created.GamePin, created.TurnPlayerPin)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.SelectedPit, 0)

	moves, err := c.Moves(ctx, created.GamePin)
	require.NoError(t, err)
	require.Len(t, moves, 3)
	assert.True(t, moves[2].Bot)

	snapshot, err := c.GetGame(ctx, created.GamePin)
	require.NoError(t, err)
	assert.Equal(t, created.GamePin, snapshot.Game.Pin)

	require.NoError(t, c.QuitGame(ctx, created.GamePin, created.TurnPlayerPin))

	_, err = c.GetGame(ctx, created.GamePin)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClientJoinAndErrors(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	created, err := c.CreateGame(ctx, "Alice", false)
	require.NoError(t, err)

	joined, err := c.JoinGame(ctx, created.GamePin, "Bob")
	require.NoError(t, err)
	assert.NotEmpty(t, joined.OpponentPlayerPin)

	_, err = c.MakeMove(ctx, created.GamePin, joined.OpponentPlayerPin, 0)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.NotEmpty(t, apiErr.Description)

	_, err = c.CreateGame(ctx, "", false)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
