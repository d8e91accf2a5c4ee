package errors

import "errors"

var (
	ErrInvalidMove        = errors.New("invalid move")
	ErrPitOutOfRange      = errors.New("selected pit is out of range")
	ErrEmptyPit           = errors.New("selected pit is empty")
	ErrNotTurnPlayer      = errors.New("not your turn")
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameNotStarted     = errors.New("game has not started yet")
	ErrGameNotFinished    = errors.New("game is not finished yet")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrGameNotFound       = errors.New("game not found")
	ErrNoBotPlayer        = errors.New("game has no bot player")
	ErrUnauthorized       = errors.New("you are not allowed to perform this action")
	ErrConflict           = errors.New("game was modified by another request")
	ErrActionFailed       = errors.New("cannot perform database action")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidConfig      = errors.New("invalid board config")
)
