package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kalaha/internal/client"
	"kalaha/internal/domain/game"
	"kalaha/internal/rules"
	"kalaha/internal/ui"
)

const requestTimeout = 5 * time.Second

type session struct {
	app    *tview.Application
	view   *ui.BoardView
	api    *client.Client
	delay  time.Duration
	game   game.CreateGameResponse
	busy     bool
	closed   bool
	quitting bool
}

func main() {
	cfg, err := loadPlayConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "game server base URL")
	flag.StringVar(&cfg.PlayerName, "name", cfg.PlayerName, "player name")
	flag.Parse()

	if err = run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg playConfig) error {
	api := client.New(cfg.BaseURL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	boardCfg, err := api.Configs(ctx)
	if err != nil {
		return fmt.Errorf("load board config: %w", err)
	}
	created, err := api.CreateGame(ctx, cfg.PlayerName, true)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	s := &session{
		app:   tview.NewApplication(),
		api:   api,
		delay: cfg.botDelay(),
		game:  created,
	}
	s.view = ui.NewBoardView(boardCfg, s.play)
	s.view.SetBoard(rules.NewSide(boardCfg), rules.NewSide(boardCfg))
	s.view.SetStatus("Game %s: your turn", created.GamePin)

	s.view.Input().SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			s.quit()
			return nil
		}
		return event
	})

	return s.app.SetRoot(s.view.Primitive(), true).Run()
}

// play runs on the UI goroutine. Requests are made in the background and the
// view is updated through QueueUpdateDraw.
func (s *session) play(pit int) {
	if s.busy || s.closed {
		return
	}
	s.busy = true

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		res, err := s.api.MakeMove(ctx, s.game.GamePin, s.game.TurnPlayerPin, pit)
		s.app.QueueUpdateDraw(func() {
			if err != nil {
				s.busy = false
				s.view.SetStatus("[red]%s", err)
				return
			}
			s.show(res)
			switch {
			case res.Finished:
				s.finish(res)
			case res.WonAnotherMove:
				s.busy = false
				s.view.SetStatus("[green]You won another turn!")
			default:
				s.view.SetStatus("Bot is thinking...")
				go s.botTurn()
			}
		})
	}()
}

// botTurn requests bot moves until it is the player's turn again.
func (s *session) botTurn() {
	for {
		time.Sleep(s.delay)

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		res, err := s.api.BotMove(ctx, s.game.GamePin, s.game.TurnPlayerPin)
		cancel()

		done := err != nil || res.Finished || !res.WonAnotherMove
		s.app.QueueUpdateDraw(func() {
			if err != nil {
				s.busy = false
				s.view.SetStatus("[red]bot move failed: %s", err)
				return
			}
			s.show(res)
			switch {
			case res.Finished:
				s.finish(res)
			case res.WonAnotherMove:
				s.view.SetStatus("Bot played pit %d and won another turn", res.SelectedPit+1)
			default:
				s.busy = false
				s.view.SetStatus("Bot played pit %d. Your turn", res.SelectedPit+1)
			}
		})
		if done {
			return
		}
	}
}

func (s *session) show(res client.MoveResult) {
	if len(res.Board) == 2 {
		s.view.SetBoard(res.Board[game.PlayerOne], res.Board[game.PlayerTwo])
	}
}

func (s *session) finish(res client.MoveResult) {
	s.closed = true
	switch {
	case res.WinnerPin == nil:
		s.view.SetStatus("[yellow]Draw! Press q to exit")
	case *res.WinnerPin == s.game.TurnPlayerPin:
		s.view.SetStatus("[green]You won! Press q to exit")
	default:
		s.view.SetStatus("[red]The bot won. Press q to exit")
	}
}

// quit leaves a running game in the background and stops the application
// once the server has answered.
func (s *session) quit() {
	if s.quitting {
		return
	}
	s.quitting = true
	if s.closed {
		s.app.Stop()
		return
	}
	s.closed = true
	s.view.SetStatus("Leaving game %s...", s.game.GamePin)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		_ = s.api.QuitGame(ctx, s.game.GamePin, s.game.TurnPlayerPin)
		cancel()
		s.app.QueueUpdate(s.app.Stop)
	}()
}
