package entity

import (
	"fmt"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
)

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// ParseDirection accepts one of up, down, left, right.
func ParseDirection(value string) (Direction, error) {
	direction := Direction(value)
	if !direction.IsValid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidDirection, value)
	}

	return direction, nil
}

func (that Direction) IsValid() bool {
	switch that {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	default:
		return false
	}
}

// Delta returns the row and column offset of a single step.
func (that Direction) Delta() (int, int) {
	switch that {
	case DirectionUp:
		return -1, 0
	case DirectionDown:
		return 1, 0
	case DirectionLeft:
		return 0, -1
	case DirectionRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Coordinate is a 0-based (row, col) position on a grid.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coordinate) Step(direction Direction) Coordinate {
	dRow, dCol := direction.Delta()
	return Coordinate{Row: that.Row + dRow, Col: that.Col + dCol}
}

// Distance is the Manhattan distance between two coordinates.
func (that Coordinate) Distance(other Coordinate) int {
	return abs(that.Row-other.Row) + abs(that.Col-other.Col)
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
