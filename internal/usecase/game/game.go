package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kalaha/internal/bot"
	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
	"kalaha/internal/pin"
	"kalaha/internal/rules"
)

const maxPinAttempts = 5

type GameStore interface {
	PinExists(ctx context.Context, pin string) (bool, error)
	CreateGame(ctx context.Context, gameData *game.Game) error
	GetGameByPin(ctx context.Context, pin string) (*game.Game, error)
	SaveGame(ctx context.Context, gameData *game.Game) error
	DeleteGame(ctx context.Context, pin string) error
}

type MoveLog interface {
	AppendMove(ctx context.Context, gamePin string, move game.Move) error
	Moves(ctx context.Context, gamePin string) ([]game.Move, error)
	DeleteMoves(ctx context.Context, gamePin string) error
	Publish(ctx context.Context, gamePin string, update game.Update) error
	Subscribe(ctx context.Context, gamePin string) (game.Subscription, error)
}

// MovePicker chooses a pit for a non-human player.
type MovePicker interface {
	PickPit(ctx context.Context, side game.Side, cfg game.BoardConfig) (int, error)
}

// MoveOutcome is what a caller learns from an accepted move.
type MoveOutcome struct {
	Game           *game.Game
	SelectedPit    int
	Outcome        rules.Outcome
	WonAnotherMove bool
	WinnerPin      *string
}

func (m *MoveOutcome) Finished() bool {
	return m.Outcome == rules.Finished
}

type GameUseCase struct {
	cfg    game.BoardConfig
	store  GameStore
	moves  MoveLog
	picker MovePicker
	log    *zap.SugaredLogger

	now    func() time.Time
	newPin func(pin.Kind) string
}

func NewGameUseCase(cfg game.BoardConfig, store GameStore, moves MoveLog, picker MovePicker, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		cfg:    cfg,
		store:  store,
		moves:  moves,
		picker: picker,
		log:    log,
		now:    time.Now,
		newPin: pin.New,
	}
}

func (g *GameUseCase) Configs() game.BoardConfig {
	return g.cfg
}

// CreateGame registers a new game whose creator is the first turn player.
// With vsBot the bot takes the second seat and the game starts at once.
func (g *GameUseCase) CreateGame(ctx context.Context, request game.CreateGameRequest) (game.CreateGameResponse, error) {
	gamePin, err := g.uniqueGamePin(ctx)
	if err != nil {
		return game.CreateGameResponse{}, err
	}

	now := g.now()
	turnPlayerPin := g.newPin(pin.ForSeat(game.PlayerOne))

	newGame := &game.Game{
		ID:            uuid.NewString(),
		Pin:           gamePin,
		TurnPlayerPin: turnPlayerPin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	newGame.Players[game.PlayerOne] = game.Player{Pin: turnPlayerPin, Name: request.PlayerName}
	newGame.Board[game.PlayerOne] = rules.NewSide(g.cfg)

	if request.VsBot {
		g.seatOpponent(newGame, bot.Name, true, now)
	}

	if err = g.store.CreateGame(ctx, newGame); err != nil {
		return game.CreateGameResponse{}, err
	}

	g.log.Infow("game created", "game_pin", gamePin, "vs_bot", request.VsBot)
	return game.CreateGameResponse{
		GamePin:       gamePin,
		TurnPlayerPin: turnPlayerPin,
	}, nil
}

// JoinGame seats the second player. Games that already started are reported
// as missing.
func (g *GameUseCase) JoinGame(ctx context.Context, gamePin string, request game.JoinGameRequest) (game.JoinGameResponse, error) {
	found, err := g.store.GetGameByPin(ctx, gamePin)
	if err != nil {
		return game.JoinGameResponse{}, err
	}
	if found.IsStarted() {
		return game.JoinGameResponse{}, fmt.Errorf("%w: %w", errs.ErrGameNotFound, errs.ErrGameAlreadyStarted)
	}

	opponentPin := g.seatOpponent(found, request.PlayerName, false, g.now())

	if err = g.store.SaveGame(ctx, found); err != nil {
		return game.JoinGameResponse{}, err
	}

	g.log.Infow("player joined", "game_pin", gamePin, "player_pin", opponentPin)
	return game.JoinGameResponse{OpponentPlayerPin: opponentPin}, nil
}

func (g *GameUseCase) seatOpponent(gameData *game.Game, name string, isBot bool, now time.Time) string {
	opponentPin := g.newPin(pin.ForSeat(game.PlayerTwo))

	gameData.Players[game.PlayerTwo] = game.Player{Pin: opponentPin, Name: name, Bot: isBot}
	gameData.Board[game.PlayerTwo] = rules.NewSide(g.cfg)
	gameData.OpponentPlayerPin = opponentPin
	gameData.StartedAt = &now
	gameData.UpdatedAt = now

	return opponentPin
}

// MakeMove plays selectedPitIndex for playerPin.
func (g *GameUseCase) MakeMove(ctx context.Context, gamePin, playerPin string, selectedPitIndex int) (*MoveOutcome, error) {
	found, err := g.store.GetGameByPin(ctx, gamePin)
	if err != nil {
		return nil, err
	}
	if seat, ok := found.SeatOf(playerPin); ok && found.Players[seat].Bot {
		return nil, errs.ErrUnauthorized
	}
	return g.play(ctx, found, playerPin, selectedPitIndex, false)
}

// MakeBotMove lets the bot of the game play its turn. playerPin must belong
// to a participant.
func (g *GameUseCase) MakeBotMove(ctx context.Context, gamePin, playerPin string) (*MoveOutcome, error) {
	found, err := g.store.GetGameByPin(ctx, gamePin)
	if err != nil {
		return nil, err
	}
	if !found.HasPlayer(playerPin) {
		return nil, errs.ErrUnauthorized
	}

	botSeat, ok := found.BotSeat()
	if !ok {
		return nil, errs.ErrNoBotPlayer
	}
	botPin := found.Players[botSeat].Pin

	if found.IsFinished() {
		return nil, errs.ErrGameFinished
	}
	if found.TurnPlayerPin != botPin {
		return nil, errs.ErrNotTurnPlayer
	}

	selected, err := g.picker.PickPit(ctx, found.Board[botSeat], g.cfg)
	if err != nil {
		return nil, fmt.Errorf("bot failed to pick a pit: %w", err)
	}

	return g.play(ctx, found, botPin, selected, true)
}

func (g *GameUseCase) play(ctx context.Context, found *game.Game, playerPin string, selectedPitIndex int, isBot bool) (*MoveOutcome, error) {
	now := g.now()
	next := found.Clone()

	result, err := rules.Play(next, playerPin, selectedPitIndex, g.cfg, now)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = now

	if err = g.store.SaveGame(ctx, next); err != nil {
		return nil, err
	}

	move := game.Move{
		PlayerPin:        playerPin,
		SelectedPitIndex: selectedPitIndex,
		Bot:              isBot,
		PlayedAt:         now,
	}
	g.record(ctx, next, move)

	outcome := &MoveOutcome{
		Game:           next,
		SelectedPit:    selectedPitIndex,
		Outcome:        result.Outcome,
		WonAnotherMove: result.Outcome == rules.Continues,
	}

	if outcome.Finished() {
		outcome.WinnerPin, err = rules.Winner(next, g.cfg)
		if err != nil {
			return nil, err
		}
		g.log.Infow("game finished", "game_pin", next.Pin, "winner_pin", pinOrDraw(outcome.WinnerPin))
	}

	return outcome, nil
}

// record stores the move in the history and notifies watchers. The game is
// already saved at this point, so failures are only logged.
func (g *GameUseCase) record(ctx context.Context, gameData *game.Game, move game.Move) {
	if err := g.moves.AppendMove(ctx, gameData.Pin, move); err != nil {
		g.log.Warnf("failed to append move to history of game %s: %v", gameData.Pin, err)
	}
	if err := g.moves.Publish(ctx, gameData.Pin, game.Update{Game: gameData, Move: move}); err != nil {
		g.log.Warnf("failed to publish update of game %s: %v", gameData.Pin, err)
	}
}

func (g *GameUseCase) GetGame(ctx context.Context, gamePin string) (*game.Game, error) {
	return g.store.GetGameByPin(ctx, gamePin)
}

// Winner returns the winner of a finished game, nil on a draw or while the
// game is running.
func (g *GameUseCase) Winner(gameData *game.Game) *string {
	winner, err := rules.Winner(gameData, g.cfg)
	if err != nil {
		return nil
	}
	return winner
}

func (g *GameUseCase) Moves(ctx context.Context, gamePin string) ([]game.Move, error) {
	if _, err := g.store.GetGameByPin(ctx, gamePin); err != nil {
		return nil, err
	}
	return g.moves.Moves(ctx, gamePin)
}

// QuitGame removes the game and its history. Any participant may quit.
func (g *GameUseCase) QuitGame(ctx context.Context, gamePin, playerPin string) error {
	found, err := g.store.GetGameByPin(ctx, gamePin)
	if err != nil {
		return err
	}
	if !found.HasPlayer(playerPin) {
		return errs.ErrUnauthorized
	}

	if err = g.store.DeleteGame(ctx, gamePin); err != nil {
		return err
	}
	if err = g.moves.DeleteMoves(ctx, gamePin); err != nil {
		g.log.Warnf("failed to delete history of game %s: %v", gamePin, err)
	}

	g.log.Infow("game quit", "game_pin", gamePin, "player_pin", playerPin)
	return nil
}

// Watch subscribes to the updates of an existing game and returns its
// current state.
func (g *GameUseCase) Watch(ctx context.Context, gamePin string) (*game.Game, game.Subscription, error) {
	// Subscribe before reading so no update falls between the snapshot and
	// the stream.
	sub, err := g.moves.Subscribe(ctx, gamePin)
	if err != nil {
		return nil, nil, err
	}
	found, err := g.store.GetGameByPin(ctx, gamePin)
	if err != nil {
		_ = sub.Close()
		return nil, nil, err
	}
	return found, sub, nil
}

func (g *GameUseCase) uniqueGamePin(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxPinAttempts; attempt++ {
		candidate := g.newPin(pin.Game)
		exists, err := g.store.PinExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		g.log.Warnf("game pin %s already taken, regenerating", candidate)
	}
	return "", fmt.Errorf("%w: no free game pin after %d attempts", errs.ErrActionFailed, maxPinAttempts)
}

func pinOrDraw(winner *string) string {
	if winner == nil {
		return "draw"
	}
	return *winner
}
