package labyrinth

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
)

// MinComplexity is the smallest complexity whose entrance and exit differ.
const MinComplexity = 2

// Generator carves perfect mazes with a randomized depth-first walk.
// It is not safe for concurrent use because the random source is not.
type Generator struct {
	rng           *rand.Rand
	maxComplexity int
}

// NewGenerator returns a generator drawing from rng. A maxComplexity of zero
// or less leaves the size unbounded.
func NewGenerator(rng *rand.Rand, maxComplexity int) *Generator {
	return &Generator{
		rng:           rng,
		maxComplexity: maxComplexity,
	}
}

// Generate builds a (2n+1)x(2n+1) maze with the entrance at (1,1) and the
// exit in the opposite inner corner.
func (that *Generator) Generate(complexity int) (*entity.Maze, error) {
	if err := that.validateComplexity(complexity); err != nil {
		return nil, err
	}

	size := 2*complexity + 1
	entrance := entity.Coordinate{Row: 1, Col: 1}
	exit := entity.Coordinate{Row: size - 2, Col: size - 2}

	cells := make([][]entity.Cell, size)
	for row := range cells {
		cells[row] = make([]entity.Cell, size) // zero value is entity.Wall
	}

	cells[entrance.Row][entrance.Col] = entity.Open
	stack := []entity.Coordinate{entrance}

	var candidates [4]entity.Coordinate
	for len(stack) > 0 {
		current := stack[len(stack)-1]

		found := 0
		for _, direction := range entity.Directions {
			next := current.Step(direction).Step(direction)
			if next.Row < 1 || next.Row > size-2 || next.Col < 1 || next.Col > size-2 {
				continue
			}

			if cells[next.Row][next.Col] == entity.Wall {
				candidates[found] = next
				found++
			}
		}

		if found == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[that.rng.Intn(found)]
		between := entity.Coordinate{
			Row: (current.Row + next.Row) / 2,
			Col: (current.Col + next.Col) / 2,
		}

		cells[between.Row][between.Col] = entity.Open
		cells[next.Row][next.Col] = entity.Open
		stack = append(stack, next)
	}

	cells[entrance.Row][entrance.Col] = entity.Entrance
	cells[exit.Row][exit.Col] = entity.Exit

	grid, err := entity.NewGrid(cells)
	if err != nil {
		return nil, fmt.Errorf("generated grid is corrupted: %w", err)
	}

	if rows, cols := grid.Dimensions(); rows != size || cols != size {
		return nil, fmt.Errorf("%w: generated %dx%d grid, want %dx%d", entity.ErrMalformedGrid, rows, cols, size, size)
	}

	return entity.NewMaze(grid, entrance, exit)
}

func (that *Generator) validateComplexity(complexity int) error {
	if complexity < MinComplexity {
		return fmt.Errorf("%w: %d is below the minimum of %d", apperror.ErrInvalidComplexity, complexity, MinComplexity)
	}

	if that.maxComplexity > 0 && complexity > that.maxComplexity {
		return fmt.Errorf("%w: %d is above the maximum of %d", apperror.ErrInvalidComplexity, complexity, that.maxComplexity)
	}

	return nil
}
