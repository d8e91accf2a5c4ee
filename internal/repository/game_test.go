package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap/zaptest"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

const gamesNamespace = mtest.TestDb + "." + gamesCollection

func newMongoStorage(mt *mtest.T) *GameMongoStorage {
	return NewGameMongoStorage(zaptest.NewLogger(mt.T).Sugar(), mt.DB)
}

func storedGameDoc(pin string, version int) bson.D {
	return bson.D{
		{Key: "_id", Value: "id-" + pin},
		{Key: "pin", Value: pin},
		{Key: "turn_player_pin", Value: "P1-000002"},
		{Key: "board", Value: bson.A{bson.A{4, 4, 4, 4, 4, 4, 0}, bson.A{4, 4, 4, 4, 4, 4, 0}}},
		{Key: "version", Value: version},
	}
}

func TestGameMongoStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := newMongoStorage(mt).CreateGame(ctx, &game.Game{ID: "id-1", Pin: "G-000001"})
		assert.NoError(mt, err)
	})

	mt.Run("create with taken pin", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.games index: pin_unique",
		}))

		err := newMongoStorage(mt).CreateGame(ctx, &game.Game{ID: "id-1", Pin: "G-000001"})
		assert.ErrorIs(mt, err, errs.ErrConflict)
	})

	mt.Run("get", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNamespace, mtest.FirstBatch, storedGameDoc("G-000001", 3)))

		found, err := newMongoStorage(mt).GetGameByPin(ctx, "G-000001")
		require.NoError(mt, err)
		assert.Equal(mt, "G-000001", found.Pin)
		assert.Equal(mt, 3, found.Version)
		assert.Equal(mt, game.Side{4, 4, 4, 4, 4, 4, 0}, found.Board[game.PlayerTwo])
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, gamesNamespace, mtest.FirstBatch))

		_, err := newMongoStorage(mt).GetGameByPin(ctx, "G-000009")
		assert.ErrorIs(mt, err, errs.ErrGameNotFound)
	})

	mt.Run("save advances version", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		gameData := &game.Game{ID: "id-1", Pin: "G-000001", Version: 3}
		require.NoError(mt, newMongoStorage(mt).SaveGame(ctx, gameData))
		assert.Equal(mt, 4, gameData.Version)
	})

	mt.Run("save stale version", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, gamesNamespace, mtest.FirstBatch, storedGameDoc("G-000001", 4)),
		)

		gameData := &game.Game{ID: "id-1", Pin: "G-000001", Version: 3}
		err := newMongoStorage(mt).SaveGame(ctx, gameData)
		assert.ErrorIs(mt, err, errs.ErrConflict)
		assert.Equal(mt, 3, gameData.Version)
	})

	mt.Run("save deleted game", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, gamesNamespace, mtest.FirstBatch),
		)

		gameData := &game.Game{ID: "id-1", Pin: "G-000001", Version: 3}
		err := newMongoStorage(mt).SaveGame(ctx, gameData)
		assert.ErrorIs(mt, err, errs.ErrGameNotFound)
		assert.Equal(mt, 3, gameData.Version)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		storage := newMongoStorage(mt)

		assert.NoError(mt, storage.DeleteGame(ctx, "G-000001"))
		assert.ErrorIs(mt, storage.DeleteGame(ctx, "G-000001"), errs.ErrGameNotFound)
	})

	mt.Run("pin exists", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, gamesNamespace, mtest.FirstBatch, storedGameDoc("G-000001", 0)),
			mtest.CreateCursorResponse(0, gamesNamespace, mtest.FirstBatch),
		)
		storage := newMongoStorage(mt)

		exists, err := storage.PinExists(ctx, "G-000001")
		require.NoError(mt, err)
		assert.True(mt, exists)

		exists, err = storage.PinExists(ctx, "G-000002")
		require.NoError(mt, err)
		assert.False(mt, exists)
	})
}
