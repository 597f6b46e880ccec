package pkg

import "github.com/google/uuid"

// GenerateRoomID returns a fresh identifier for a game room.
func GenerateRoomID() string {
	return uuid.NewString()
}

// GeneratePlayerID returns a fresh identifier for a connection.
func GeneratePlayerID() string {
	return uuid.NewString()
}
