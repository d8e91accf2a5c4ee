// Package client talks to the game API and unwraps its response envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"kalaha/internal/domain/game"
	"kalaha/internal/httpresponse"
	"kalaha/internal/middleware"
)

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status      int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Description)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// MoveResult is the answer to a move. Game and WinnerPin are set only when
// the move finished the game.
type MoveResult struct {
	Board          []game.Side
	WonAnotherMove bool
	SelectedPit    int
	Finished       bool
	Game           *game.Game
	WinnerPin      *string
}

func (c *Client) Configs(ctx context.Context) (game.BoardConfig, error) {
	var cfg game.BoardConfig
	err := c.do(ctx, http.MethodGet, "/games/configs", "", nil, &cfg)
	return cfg, err
}

func (c *Client) CreateGame(ctx context.Context, playerName string, vsBot bool) (game.CreateGameResponse, error) {
	var resp game.CreateGameResponse
	err := c.do(ctx, http.MethodPost, "/games", "", game.CreateGameRequest{PlayerName: playerName, VsBot: vsBot}, &resp)
	return resp, err
}

func (c *Client) JoinGame(ctx context.Context, gamePin, playerName string) (game.JoinGameResponse, error) {
	var resp game.JoinGameResponse
	err := c.do(ctx, http.MethodPost, gamePath(gamePin, "join"), "", game.JoinGameRequest{PlayerName: playerName}, &resp)
	return resp, err
}

func (c *Client) GetGame(ctx context.Context, gamePin string) (game.GameResponse, error) {
	var resp game.GameResponse
	err := c.do(ctx, http.MethodGet, gamePath(gamePin, ""), "", nil, &resp)
	return resp, err
}

func (c *Client) Moves(ctx context.Context, gamePin string) ([]game.Move, error) {
	var moves []game.Move
	err := c.do(ctx, http.MethodGet, gamePath(gamePin, "moves"), "", nil, &moves)
	return moves, err
}

func (c *Client) MakeMove(ctx context.Context, gamePin, playerPin string, selectedPitIndex int) (MoveResult, error) {
	body := game.MakeMoveRequest{SelectedPitIndex: &selectedPitIndex}
	return c.move(ctx, http.MethodPatch, gamePath(gamePin, "make-move"), playerPin, body)
}

func (c *Client) BotMove(ctx context.Context, gamePin, playerPin string) (MoveResult, error) {
	return c.move(ctx, http.MethodPost, gamePath(gamePin, "bot-move"), playerPin, nil)
}

func (c *Client) QuitGame(ctx context.Context, gamePin, playerPin string) error {
	return c.do(ctx, http.MethodDelete, gamePath(gamePin, ""), playerPin, nil, nil)
}

func (c *Client) move(ctx context.Context, method, path, playerPin string, body any) (MoveResult, error) {
	var raw struct {
		Board          []game.Side `json:"board"`
		WonAnotherMove bool        `json:"wonAnotherMove"`
		SelectedPit    int         `json:"selectedPitIndex"`
		Game           *game.Game  `json:"game"`
		WinnerPin      *string     `json:"winnerPin"`
	}
	if err := c.do(ctx, method, path, playerPin, body, &raw); err != nil {
		return MoveResult{}, err
	}

	res := MoveResult{
		Board:          raw.Board,
		WonAnotherMove: raw.WonAnotherMove,
		SelectedPit:    raw.SelectedPit,
		Game:           raw.Game,
		WinnerPin:      raw.WinnerPin,
	}
	if raw.Game != nil {
		res.Finished = true
		res.Board = raw.Game.Boards()
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path, playerPin string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerPin != "" {
		req.Header.Set(middleware.PlayerPinHeader, playerPin)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope httpresponse.Response[httpresponse.ErrorResponse]
		if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return &APIError{Status: resp.StatusCode, Description: http.StatusText(resp.StatusCode)}
		}
		return &APIError{Status: resp.StatusCode, Description: envelope.Body.ErrorDescription}
	}

	if dst == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := httpresponse.Response[json.RawMessage]{}
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(envelope.Body, dst)
}

func gamePath(gamePin, action string) string {
	path := "/games/" + url.PathEscape(gamePin)
	if action != "" {
		path += "/" + action
	}
	return path
}
