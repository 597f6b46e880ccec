package entity

// Membership records the room a player last joined.
type Membership struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
}
