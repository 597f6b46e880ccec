package labyrinth

import (
	"fmt"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
	"github.com/rocketscienceinc/labyrinth-backend/internal/protocol"
)

type mazeGenerator interface {
	Generate(complexity int) (*entity.Maze, error)
}

// GameController applies start, join, move and leave to one session and
// reports the resulting events. It must be driven by a single goroutine.
type GameController struct {
	session   *entity.Session
	generator mazeGenerator
}

func NewGameController(session *entity.Session, generator mazeGenerator) *GameController {
	return &GameController{
		session:   session,
		generator: generator,
	}
}

// Snapshot returns a deep copy of the session.
func (that *GameController) Snapshot() *entity.Session {
	return that.session.Clone()
}

func (that *GameController) Version() int64 {
	return that.session.Version
}

func (that *GameController) PlayerCount() int {
	return len(that.session.Players)
}

func (that *GameController) IsIdle() bool {
	return that.session.IsIdle()
}

func (that *GameController) IsFinished() bool {
	return that.session.IsFinished()
}

// Start replaces the maze and clears the players. A game in progress cannot
// be restarted.
func (that *GameController) Start(complexity int) ([]protocol.Event, error) {
	if that.session.IsActive() {
		return nil, apperror.ErrGameInProgress
	}

	maze, err := that.generator.Generate(complexity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate maze: %w", err)
	}

	that.session.Maze = maze
	that.session.Players = make(map[string]*entity.Player)
	that.session.Winner = ""
	that.session.Status = entity.StatusActive
	that.session.Version++

	return []protocol.Event{
		protocol.NewMazeReady(that.session.ID, maze),
		that.playersUpdated(),
	}, nil
}

// Join spawns the player at the entrance. Joining again keeps the position.
func (that *GameController) Join(playerID string) ([]protocol.Event, error) {
	if that.session.IsFinished() {
		return nil, nil
	}

	if err := that.session.ConfirmActiveState(); err != nil {
		return nil, err
	}

	if _, ok := that.session.Players[playerID]; !ok {
		that.session.Players[playerID] = entity.NewPlayer(playerID, that.session.Maze.Entrance)
		that.session.Version++
	}

	mazeReady := protocol.NewMazeReady(that.session.ID, that.session.Maze)
	mazeReady.Target = playerID

	return []protocol.Event{mazeReady, that.playersUpdated()}, nil
}

// Move steps the player one cell. Illegal steps leave the session untouched
// and only notify the mover. Reaching the exit finishes the game.
func (that *GameController) Move(playerID string, direction entity.Direction) ([]protocol.Event, error) {
	if that.session.IsFinished() {
		return nil, nil
	}

	if err := that.session.ConfirmActiveState(); err != nil {
		return nil, err
	}

	player, ok := that.session.Players[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownPlayer, playerID)
	}

	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidDirection, direction)
	}

	maze := that.session.Maze
	if _, err := maze.CellAt(player.Position); err != nil {
		return nil, fmt.Errorf("player %s is off the grid: %w", playerID, err)
	}

	to := player.Position.Step(direction)
	if !IsLegal(maze, player.Position, to) {
		return []protocol.Event{
			protocol.NewMoveRejected(that.session.ID, playerID, direction, player.Position),
		}, nil
	}

	player.MoveTo(to)
	that.session.Version++

	events := []protocol.Event{that.playersUpdated()}
	if to == maze.Exit {
		that.session.Winner = playerID
		that.session.Status = entity.StatusFinished
		events = append(events, protocol.NewGameOver(that.session.ID, playerID))
	}

	return events, nil
}

// Leave removes the player in any state.
func (that *GameController) Leave(playerID string) ([]protocol.Event, error) {
	if _, ok := that.session.Players[playerID]; !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownPlayer, playerID)
	}

	delete(that.session.Players, playerID)
	that.session.Version++

	return []protocol.Event{that.playersUpdated()}, nil
}

func (that *GameController) playersUpdated() protocol.Event {
	return protocol.NewPlayersUpdated(that.session.ID, that.session.Positions())
}
