package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
)

var ErrUnknownSessionStatus = errors.New("unknown session status")

const (
	StatusIdle     = "idle"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Session is one room: a maze, the players walking it and the game result.
type Session struct {
	ID      string             `json:"id"`
	Status  string             `json:"status"`
	Maze    *Maze              `json:"maze,omitempty"`
	Players map[string]*Player `json:"players"`
	Winner  string             `json:"winner,omitempty"`
	Version int64              `json:"version"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		Status:  StatusIdle,
		Players: make(map[string]*Player),
	}
}

func (that *Session) IsIdle() bool {
	return that.Status == StatusIdle
}

func (that *Session) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) ConfirmActiveState() error {
	switch {
	case that.IsIdle():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsActive():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSessionStatus, that.Status)
	}
}

// Positions returns a fresh player id to coordinate map.
func (that *Session) Positions() map[string]Coordinate {
	positions := make(map[string]Coordinate, len(that.Players))
	for id, player := range that.Players {
		positions[id] = player.Position
	}

	return positions
}

// Clone returns a deep copy that shares nothing mutable with the session.
func (that *Session) Clone() *Session {
	clone := &Session{
		ID:      that.ID,
		Status:  that.Status,
		Winner:  that.Winner,
		Version: that.Version,
		Players: make(map[string]*Player, len(that.Players)),
	}

	if that.Maze != nil {
		maze := *that.Maze
		clone.Maze = &maze
	}

	for id, player := range that.Players {
		clone.Players[id] = player.Clone()
	}

	return clone
}
