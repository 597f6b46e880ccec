package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrGameInProgress    = errors.New("game is already in progress")
	ErrInvalidComplexity = errors.New("invalid maze complexity")
	ErrOutOfBounds       = errors.New("coordinate is out of bounds")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrSessionNotFound   = errors.New("session not found")
	ErrPlayerNotFound    = errors.New("player not found")
)
