package game

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
	"kalaha/internal/httpresponse"
	"kalaha/internal/middleware"
	gameuc "kalaha/internal/usecase/game"
	"kalaha/internal/utils"
)

const (
	minPlayerNameLen = 1
	maxPlayerNameLen = 30
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
	}
}

// Routes mounts the game API. Moves and quitting require the x-player-pin
// header.
func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Get("/configs", g.HandleConfigs)
		r.Post("/", g.HandleNewGame)

		r.Route("/{gamePin}", func(r chi.Router) {
			r.Use(middleware.GamePin)
			r.Get("/", g.HandleGetGame)
			r.Get("/moves", g.HandleMoves)
			r.Get("/watch", g.HandleWatch)
			r.Post("/join", g.HandleJoinGame)

			r.Group(func(r chi.Router) {
				r.Use(middleware.PlayerPin)
				r.Patch("/make-move", g.HandleMakeMove)
				r.Post("/bot-move", g.HandleBotMove)
				r.Delete("/", g.HandleQuitGame)
			})
		})
	})
}

func (g *GameHandler) HandleConfigs(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, g.gameUC.Configs())
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var request game.CreateGameRequest
	if err := utils.DecodeJSONRequest(w, r, &request); err != nil {
		g.fail(w, err)
		return
	}
	if err := validatePlayerName(request.PlayerName); err != nil {
		g.fail(w, err)
		return
	}

	resp, err := g.gameUC.CreateGame(r.Context(), request)
	if err != nil {
		g.fail(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, resp)
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var request game.JoinGameRequest
	if err := utils.DecodeJSONRequest(w, r, &request); err != nil {
		g.fail(w, err)
		return
	}
	if err := validatePlayerName(request.PlayerName); err != nil {
		g.fail(w, err)
		return
	}

	resp, err := g.gameUC.JoinGame(r.Context(), chi.URLParam(r, "gamePin"), request)
	if err != nil {
		g.fail(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleMakeMove(w http.ResponseWriter, r *http.Request) {
	var request game.MakeMoveRequest
	if err := utils.DecodeJSONRequest(w, r, &request); err != nil {
		g.fail(w, err)
		return
	}

	cfg := g.gameUC.Configs()
	if request.SelectedPitIndex == nil {
		g.fail(w, fmt.Errorf("%w: selectedPitIndex is required", errs.ErrInvalidInput))
		return
	}
	if pit := *request.SelectedPitIndex; pit < 0 || pit > cfg.NumberOfPits-2 {
		g.fail(w, fmt.Errorf("%w: selectedPitIndex must be between 0 and %d", errs.ErrInvalidInput, cfg.NumberOfPits-2))
		return
	}

	gamePin := chi.URLParam(r, "gamePin")
	playerPin := middleware.PlayerPinFrom(r.Context())

	outcome, err := g.gameUC.MakeMove(r.Context(), gamePin, playerPin, *request.SelectedPitIndex)
	if err != nil {
		g.fail(w, err)
		return
	}

	g.log.Infof("player %s played pit %d in game %s", playerPin, outcome.SelectedPit, gamePin)
	writeOutcome(w, outcome)
}

// HandleBotMove asks the bot of a vs-bot game to play its turn.
func (g *GameHandler) HandleBotMove(w http.ResponseWriter, r *http.Request) {
	gamePin := chi.URLParam(r, "gamePin")

	outcome, err := g.gameUC.MakeBotMove(r.Context(), gamePin, middleware.PlayerPinFrom(r.Context()))
	if err != nil {
		g.fail(w, err)
		return
	}

	g.log.Infof("bot played pit %d in game %s", outcome.SelectedPit, gamePin)
	writeOutcome(w, outcome)
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	found, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "gamePin"))
	if err != nil {
		g.fail(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.GameResponse{
		Game:      found,
		WinnerPin: g.gameUC.Winner(found),
	})
}

func (g *GameHandler) HandleMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := g.gameUC.Moves(r.Context(), chi.URLParam(r, "gamePin"))
	if err != nil {
		g.fail(w, err)
		return
	}
	if moves == nil {
		moves = []game.Move{}
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, moves)
}

func (g *GameHandler) HandleQuitGame(w http.ResponseWriter, r *http.Request) {
	err := g.gameUC.QuitGame(r.Context(), chi.URLParam(r, "gamePin"), middleware.PlayerPinFrom(r.Context()))
	if err != nil {
		g.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (g *GameHandler) fail(w http.ResponseWriter, err error) {
	if httpresponse.StatusFor(err) == http.StatusInternalServerError {
		g.log.Error(err)
	} else {
		g.log.Debug(err)
	}
	httpresponse.WriteError(w, err)
}

func writeOutcome(w http.ResponseWriter, outcome *gameuc.MoveOutcome) {
	if outcome.Finished() {
		httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.FinishedResponse{
			Game:        outcome.Game,
			WinnerPin:   outcome.WinnerPin,
			SelectedPit: outcome.SelectedPit,
		})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.MoveResponse{
		Board:          outcome.Game.Boards(),
		WonAnotherMove: outcome.WonAnotherMove,
		SelectedPit:    outcome.SelectedPit,
	})
}

func validatePlayerName(name string) error {
	if n := utf8.RuneCountInString(name); n < minPlayerNameLen || n > maxPlayerNameLen {
		return fmt.Errorf("%w: playerName must be %d to %d characters long", errs.ErrInvalidInput, minPlayerNameLen, maxPlayerNameLen)
	}
	return nil
}
