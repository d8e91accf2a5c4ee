package game

import (
	"fmt"
	"time"

	errs "kalaha/internal/errors"
)

// BoardConfig describes one side of the board. It is loaded once and never
// changes while the process runs.
type BoardConfig struct {
	NumberOfPits         int `json:"numberOfPits"`
	StoreIndex           int `json:"storeIndex"`
	StartingStonesPerPit int `json:"startingStonesPerPit"`
}

// NewBoardConfig derives the store index from the pit count.
func NewBoardConfig(numberOfPits, startingStonesPerPit int) BoardConfig {
	return BoardConfig{
		NumberOfPits:         numberOfPits,
		StoreIndex:           numberOfPits - 1,
		StartingStonesPerPit: startingStonesPerPit,
	}
}

func (c BoardConfig) Validate() error {
	if c.NumberOfPits < 2 {
		return fmt.Errorf("%w: numberOfPits must be at least 2, got %d", errs.ErrInvalidConfig, c.NumberOfPits)
	}
	if c.StoreIndex != c.NumberOfPits-1 {
		return fmt.Errorf("%w: storeIndex must be %d, got %d", errs.ErrInvalidConfig, c.NumberOfPits-1, c.StoreIndex)
	}
	if c.StartingStonesPerPit < 0 {
		return fmt.Errorf("%w: startingStonesPerPit must not be negative", errs.ErrInvalidConfig)
	}
	return nil
}

// Side holds the pits of one player; the last slot is the store.
type Side []int

func (s Side) Clone() Side {
	if s == nil {
		return nil
	}
	out := make(Side, len(s))
	copy(out, s)
	return out
}

// Seat addresses one of the two player slots of a game.
type Seat int

const (
	PlayerOne Seat = iota
	PlayerTwo
)

func (s Seat) Other() Seat {
	if s == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

type Player struct {
	Pin  string `json:"pin" bson:"pin"`
	Name string `json:"name" bson:"name"`
	Bot  bool   `json:"bot,omitempty" bson:"bot,omitempty"`
}

// Game is the persisted aggregate. Board and Players are indexed by Seat;
// TurnPlayerPin and OpponentPlayerPin say which seat is active.
type Game struct {
	ID                string     `json:"id" bson:"_id"`
	Pin               string     `json:"pin" bson:"pin"`
	Players           [2]Player  `json:"players" bson:"players"`
	Board             [2]Side    `json:"board" bson:"board"`
	TurnPlayerPin     string     `json:"turnPlayerPin" bson:"turn_player_pin"`
	OpponentPlayerPin string     `json:"opponentPlayerPin,omitempty" bson:"opponent_player_pin,omitempty"`
	Version           int        `json:"-" bson:"version"`
	CreatedAt         time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" bson:"updated_at"`
	StartedAt         *time.Time `json:"startedAt,omitempty" bson:"started_at,omitempty"`
	FinishedAt        *time.Time `json:"finishedAt,omitempty" bson:"finished_at,omitempty"`
}

// SeatOf looks up the seat of a player pin.
func (g *Game) SeatOf(pin string) (Seat, bool) {
	if pin == "" {
		return 0, false
	}
	for i, p := range g.Players {
		if p.Pin == pin {
			return Seat(i), true
		}
	}
	return 0, false
}

func (g *Game) HasPlayer(pin string) bool {
	_, ok := g.SeatOf(pin)
	return ok
}

// Side returns the pits of the given player, or nil for an unknown pin.
func (g *Game) Side(pin string) Side {
	seat, ok := g.SeatOf(pin)
	if !ok {
		return nil
	}
	return g.Board[seat]
}

func (g *Game) IsStarted() bool  { return g.StartedAt != nil }
func (g *Game) IsFinished() bool { return g.FinishedAt != nil }

// BotSeat reports the seat occupied by a bot, if any.
func (g *Game) BotSeat() (Seat, bool) {
	for i, p := range g.Players {
		if p.Bot {
			return Seat(i), true
		}
	}
	return 0, false
}

// Clone returns a deep copy that can be mutated without touching g.
func (g *Game) Clone() *Game {
	c := *g
	for i := range g.Board {
		c.Board[i] = g.Board[i].Clone()
	}
	if g.StartedAt != nil {
		t := *g.StartedAt
		c.StartedAt = &t
	}
	if g.FinishedAt != nil {
		t := *g.FinishedAt
		c.FinishedAt = &t
	}
	return &c
}

// Boards returns both sides in seat order.
func (g *Game) Boards() []Side {
	out := make([]Side, 0, len(g.Board))
	for _, s := range g.Board {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
