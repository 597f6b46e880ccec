package entity

import "fmt"

// Cell is the content of a single maze square.
type Cell uint8

const (
	Wall Cell = iota
	Open
	Entrance
	Exit
)

var cellTags = [...]string{
	Wall:     "wall",
	Open:     "open",
	Entrance: "entrance",
	Exit:     "exit",
}

func (that Cell) String() string {
	if int(that) < len(cellTags) {
		return cellTags[that]
	}

	return fmt.Sprintf("cell(%d)", uint8(that))
}

// IsWall reports whether the cell blocks movement.
func (that Cell) IsWall() bool {
	return that == Wall
}

func (that Cell) MarshalText() ([]byte, error) {
	if int(that) >= len(cellTags) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCell, uint8(that))
	}

	return []byte(cellTags[that]), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	for cell, tag := range cellTags {
		if tag == string(text) {
			*that = Cell(cell)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownCell, text)
}
