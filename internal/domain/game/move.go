package game

import "time"

// Move is one entry of a game's move history.
type Move struct {
	PlayerPin        string    `json:"playerPin"`
	SelectedPitIndex int       `json:"selectedPitIndex"`
	Bot              bool      `json:"bot,omitempty"`
	PlayedAt         time.Time `json:"playedAt"`
}

type CreateGameRequest struct {
	PlayerName string `json:"playerName"`
	VsBot      bool   `json:"vsBot,omitempty"`
}

type CreateGameResponse struct {
	GamePin       string `json:"gamePin"`
	TurnPlayerPin string `json:"turnPlayerPin"`
}

type JoinGameRequest struct {
	PlayerName string `json:"playerName"`
}

type JoinGameResponse struct {
	OpponentPlayerPin string `json:"opponentPlayerPin"`
}

type MakeMoveRequest struct {
	SelectedPitIndex *int `json:"selectedPitIndex"`
}

// MoveResponse is returned while the game goes on.
type MoveResponse struct {
	Board          []Side `json:"board"`
	WonAnotherMove bool   `json:"wonAnotherMove"`
	SelectedPit    int    `json:"selectedPitIndex"`
}

// FinishedResponse is returned by the move that ends the game. WinnerPin is
// nil on a draw.
type FinishedResponse struct {
	Game        *Game   `json:"game"`
	WinnerPin   *string `json:"winnerPin"`
	SelectedPit int     `json:"selectedPitIndex"`
}

// Update is published to watchers after every saved move.
type Update struct {
	Game *Game `json:"game"`
	Move Move  `json:"move"`
}

// Subscription delivers JSON encoded Update messages for one game.
type Subscription interface {
	Updates() <-chan []byte
	Close() error
}

// GameResponse is a game snapshot. WinnerPin is set once the game is
// finished and nobody drew.
type GameResponse struct {
	Game      *Game   `json:"game"`
	WinnerPin *string `json:"winnerPin,omitempty"`
}
