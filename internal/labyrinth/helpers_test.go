package labyrinth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
)

// mustMaze builds a maze from a picture: '#' wall, '.' open, 'S' entrance, 'E' exit.
func mustMaze(t *testing.T, picture ...string) *entity.Maze {
	t.Helper()

	var entrance, exit entity.Coordinate
	rows := make([][]entity.Cell, len(picture))
	for r, line := range picture {
		rows[r] = make([]entity.Cell, len(line))
		for c, char := range line {
			switch char {
			case '#':
				rows[r][c] = entity.Wall
			case '.':
				rows[r][c] = entity.Open
			case 'S':
				rows[r][c] = entity.Entrance
				entrance = entity.Coordinate{Row: r, Col: c}
			case 'E':
				rows[r][c] = entity.Exit
				exit = entity.Coordinate{Row: r, Col: c}
			default:
				t.Fatalf("unexpected maze character %q", char)
			}
		}
	}

	grid, err := entity.NewGrid(rows)
	require.NoError(t, err)

	maze, err := entity.NewMaze(grid, entrance, exit)
	require.NoError(t, err)

	return maze
}

type stubGenerator struct {
	maze  *entity.Maze
	err   error
	calls int
}

func (that *stubGenerator) Generate(_ int) (*entity.Maze, error) {
	that.calls++
	return that.maze, that.err
}

// corridorMaze is a 5x5 maze whose only route is right, right, down, down.
func corridorMaze(t *testing.T) *entity.Maze {
	t.Helper()

	return mustMaze(t,
		"#####",
		"#S..#",
		"###.#",
		"#..E#",
		"#####",
	)
}

// walkable lists every non-wall coordinate of the maze.
func walkable(maze *entity.Maze) []entity.Coordinate {
	var cells []entity.Coordinate
	for r, row := range maze.Grid.Rows() {
		for c, cell := range row {
			if !cell.IsWall() {
				cells = append(cells, entity.Coordinate{Row: r, Col: c})
			}
		}
	}

	return cells
}

func neighbours(maze *entity.Maze, coord entity.Coordinate) []entity.Coordinate {
	var result []entity.Coordinate
	for _, direction := range entity.Directions {
		next := coord.Step(direction)
		if cell, err := maze.CellAt(next); err == nil && !cell.IsWall() {
			result = append(result, next)
		}
	}

	return result
}

// solve returns the shortest route from entrance to exit, both included.
func solve(maze *entity.Maze) []entity.Coordinate {
	previous := map[entity.Coordinate]entity.Coordinate{maze.Entrance: maze.Entrance}
	queue := []entity.Coordinate{maze.Entrance}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == maze.Exit {
			break
		}

		for _, next := range neighbours(maze, current) {
			if _, seen := previous[next]; !seen {
				previous[next] = current
				queue = append(queue, next)
			}
		}
	}

	if _, ok := previous[maze.Exit]; !ok {
		return nil
	}

	path := []entity.Coordinate{maze.Exit}
	for current := maze.Exit; current != maze.Entrance; {
		current = previous[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

func directionTo(from, to entity.Coordinate) entity.Direction {
	for _, direction := range entity.Directions {
		if from.Step(direction) == to {
			return direction
		}
	}

	return ""
}
