package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
)

var (
	ErrUnknownCell   = errors.New("unknown cell")
	ErrMalformedGrid = errors.New("malformed grid")
)

// Grid is an immutable rectangle of cells. The zero value is an empty grid.
type Grid struct {
	cells [][]Cell
}

// NewGrid copies rows into a new grid. Rows must be non-empty and of equal length.
func NewGrid(rows [][]Cell) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Grid{}, fmt.Errorf("%w: no cells", ErrMalformedGrid)
	}

	width := len(rows[0])
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, i, len(row), width)
		}

		for _, cell := range row {
			if int(cell) >= len(cellTags) {
				return Grid{}, fmt.Errorf("%w: %d in row %d", ErrUnknownCell, uint8(cell), i)
			}
		}

		cells[i] = append(make([]Cell, 0, width), row...)
	}

	return Grid{cells: cells}, nil
}

func (that Grid) Dimensions() (int, int) {
	if len(that.cells) == 0 {
		return 0, 0
	}

	return len(that.cells), len(that.cells[0])
}

func (that Grid) InBounds(coord Coordinate) bool {
	rows, cols := that.Dimensions()
	return coord.Row >= 0 && coord.Row < rows && coord.Col >= 0 && coord.Col < cols
}

func (that Grid) CellAt(coord Coordinate) (Cell, error) {
	if !that.InBounds(coord) {
		rows, cols := that.Dimensions()
		return Wall, fmt.Errorf("%w: %s in %dx%d grid", apperror.ErrOutOfBounds, coord, rows, cols)
	}

	return that.cells[coord.Row][coord.Col], nil
}

// Rows returns a copy of the cells.
func (that Grid) Rows() [][]Cell {
	rows := make([][]Cell, len(that.cells))
	for i, row := range that.cells {
		rows[i] = append([]Cell(nil), row...)
	}

	return rows
}

func (that Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.cells)
}

func (that *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal grid: %w", err)
	}

	grid, err := NewGrid(rows)
	if err != nil {
		return err
	}

	*that = grid
	return nil
}
