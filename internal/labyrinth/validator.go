package labyrinth

import "github.com/rocketscienceinc/labyrinth-backend/internal/entity"

// IsLegal reports whether a single step from -> to is allowed in maze: to must
// be inside the grid, one orthogonal step away and not a wall.
func IsLegal(maze *entity.Maze, from, to entity.Coordinate) bool {
	if maze == nil || from.Distance(to) != 1 {
		return false
	}

	cell, err := maze.CellAt(to)
	if err != nil {
		return false
	}

	return !cell.IsWall()
}
