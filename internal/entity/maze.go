package entity

import (
	"errors"
	"fmt"
)

var ErrMalformedMaze = errors.New("malformed maze")

// Maze is a grid with its designated entrance and exit.
type Maze struct {
	Grid     Grid       `json:"grid"`
	Entrance Coordinate `json:"entrance"`
	Exit     Coordinate `json:"exit"`
}

// NewMaze checks that the entrance and exit carry their markers.
func NewMaze(grid Grid, entrance, exit Coordinate) (*Maze, error) {
	maze := &Maze{
		Grid:     grid,
		Entrance: entrance,
		Exit:     exit,
	}

	if err := maze.Validate(); err != nil {
		return nil, err
	}

	return maze, nil
}

func (that *Maze) Validate() error {
	if entrance, err := that.Grid.CellAt(that.Entrance); err != nil || entrance != Entrance {
		return fmt.Errorf("%w: entrance %s is not marked", ErrMalformedMaze, that.Entrance)
	}

	if exit, err := that.Grid.CellAt(that.Exit); err != nil || exit != Exit {
		return fmt.Errorf("%w: exit %s is not marked", ErrMalformedMaze, that.Exit)
	}

	return nil
}

func (that *Maze) Dimensions() (int, int) {
	return that.Grid.Dimensions()
}

func (that *Maze) CellAt(coord Coordinate) (Cell, error) {
	return that.Grid.CellAt(coord)
}
