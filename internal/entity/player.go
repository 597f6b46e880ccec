package entity

// Player is a participant identified by its connection id.
type Player struct {
	ID       string       `json:"id"`
	Position Coordinate   `json:"position"`
	Trail    []Coordinate `json:"trail"`
}

func NewPlayer(id string, spawn Coordinate) *Player {
	return &Player{
		ID:       id,
		Position: spawn,
		Trail:    []Coordinate{spawn},
	}
}

func (that *Player) MoveTo(coord Coordinate) {
	that.Position = coord
	that.Trail = append(that.Trail, coord)
}

func (that *Player) Clone() *Player {
	return &Player{
		ID:       that.ID,
		Position: that.Position,
		Trail:    append([]Coordinate(nil), that.Trail...),
	}
}
