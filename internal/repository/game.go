package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

const (
	gamesCollection = "games"
	queryTimeout    = 5 * time.Second
)

// GameMongoStorage keeps one document per game, keyed by a unique pin.
type GameMongoStorage struct {
	log   *zap.SugaredLogger
	games *mongo.Collection
}

func NewGameMongoStorage(log *zap.SugaredLogger, db *mongo.Database) *GameMongoStorage {
	return &GameMongoStorage{
		log:   log,
		games: db.Collection(gamesCollection),
	}
}

// EnsureIndexes creates the unique index on pin.
func (g *GameMongoStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := g.games.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pin", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("pin_unique"),
	})
	if err != nil {
		return fmt.Errorf("create pin index: %w", err)
	}
	return nil
}

func (g *GameMongoStorage) PinExists(ctx context.Context, pin string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := g.games.FindOne(ctx, bson.M{"pin": pin}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		g.log.Errorf("failed to check pin %s: %v", pin, err)
		return false, fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}
	return true, nil
}

func (g *GameMongoStorage) CreateGame(ctx context.Context, gameData *game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := g.games.InsertOne(ctx, gameData)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: pin %s is taken", errs.ErrConflict, gameData.Pin)
	} else if err != nil {
		g.log.Errorf("failed to insert game %s: %v", gameData.Pin, err)
		return fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}

	g.log.Infof("game inserted with pin %s", gameData.Pin)
	return nil
}

func (g *GameMongoStorage) GetGameByPin(ctx context.Context, pin string) (*game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var found game.Game
	err := g.games.FindOne(ctx, bson.M{"pin": pin}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", errs.ErrGameNotFound, pin)
	} else if err != nil {
		g.log.Errorf("failed to load game %s: %v", pin, err)
		return nil, fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}
	return &found, nil
}

// SaveGame replaces the stored game only if nobody saved it since it was
// loaded. On success gameData.Version is advanced.
func (g *GameMongoStorage) SaveGame(ctx context.Context, gameData *game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	next := *gameData
	next.Version = gameData.Version + 1

	filter := bson.M{"pin": gameData.Pin, "version": gameData.Version}
	res, err := g.games.ReplaceOne(ctx, filter, &next)
	if err != nil {
		g.log.Errorf("failed to save game %s: %v", gameData.Pin, err)
		return fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}
	if res.MatchedCount == 0 {
		return g.missingOrStale(ctx, gameData.Pin)
	}

	gameData.Version = next.Version
	return nil
}

func (g *GameMongoStorage) DeleteGame(ctx context.Context, pin string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := g.games.DeleteOne(ctx, bson.M{"pin": pin})
	if err != nil {
		g.log.Errorf("failed to delete game %s: %v", pin, err)
		return fmt.Errorf("%w: %w", errs.ErrActionFailed, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", errs.ErrGameNotFound, pin)
	}
	return nil
}

func (g *GameMongoStorage) missingOrStale(ctx context.Context, pin string) error {
	exists, err := g.PinExists(ctx, pin)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", errs.ErrGameNotFound, pin)
	}
	return fmt.Errorf("%w: %s", errs.ErrConflict, pin)
}
