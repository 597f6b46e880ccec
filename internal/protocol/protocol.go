// Package protocol defines the messages exchanged between clients and a game
// room. Requests flow client to server, events flow server to client.
package protocol

import (
	"encoding/json"

	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
)

// client -> server.
const (
	ActionStart = "start"
	ActionJoin  = "join"
	ActionMove  = "move"
	ActionLeave = "leave"
)

// server -> client.
const (
	EventConnected      = "connected"
	EventMazeReady      = "mazeReady"
	EventPlayersUpdated = "playersUpdated"
	EventGameOver       = "gameOver"
	EventMoveRejected   = "moveRejected"
	EventError          = "error"
)

// Message is the envelope of every frame on the wire.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request is the payload of every client action. Unused fields are omitted.
type Request struct {
	RoomID     string `json:"room_id"`
	Complexity int    `json:"complexity,omitempty"`
	Direction  string `json:"direction,omitempty"`
}

type ConnectedPayload struct {
	PlayerID string `json:"player_id"`
}

type MazeReadyPayload struct {
	RoomID   string            `json:"room_id"`
	Grid     entity.Grid       `json:"grid"`
	Entrance entity.Coordinate `json:"entrance"`
	Exit     entity.Coordinate `json:"exit"`
}

type PlayersUpdatedPayload struct {
	RoomID  string                       `json:"room_id"`
	Players map[string]entity.Coordinate `json:"players"`
}

type GameOverPayload struct {
	RoomID   string `json:"room_id"`
	WinnerID string `json:"winner_id"`
}

type MoveRejectedPayload struct {
	RoomID    string            `json:"room_id"`
	Direction entity.Direction  `json:"direction"`
	Position  entity.Coordinate `json:"position"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// Event is produced by a room transition. An empty Target means every member
// of the room receives it; otherwise only the named player does.
type Event struct {
	Name    string
	Target  string
	Payload any
}

func (that Event) IsBroadcast() bool {
	return that.Target == ""
}

// Encode wraps the event into a wire message.
func (that Event) Encode() ([]byte, error) {
	payload, err := json.Marshal(that.Payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: that.Name, Payload: payload})
}

func NewMazeReady(roomID string, maze *entity.Maze) Event {
	return Event{
		Name: EventMazeReady,
		Payload: MazeReadyPayload{
			RoomID:   roomID,
			Grid:     maze.Grid,
			Entrance: maze.Entrance,
			Exit:     maze.Exit,
		},
	}
}

func NewPlayersUpdated(roomID string, positions map[string]entity.Coordinate) Event {
	return Event{
		Name: EventPlayersUpdated,
		Payload: PlayersUpdatedPayload{
			RoomID:  roomID,
			Players: positions,
		},
	}
}

func NewGameOver(roomID, winnerID string) Event {
	return Event{
		Name: EventGameOver,
		Payload: GameOverPayload{
			RoomID:   roomID,
			WinnerID: winnerID,
		},
	}
}

func NewMoveRejected(roomID, playerID string, direction entity.Direction, position entity.Coordinate) Event {
	return Event{
		Name:   EventMoveRejected,
		Target: playerID,
		Payload: MoveRejectedPayload{
			RoomID:    roomID,
			Direction: direction,
			Position:  position,
		},
	}
}

func NewConnected(playerID string) Event {
	return Event{
		Name:    EventConnected,
		Target:  playerID,
		Payload: ConnectedPayload{PlayerID: playerID},
	}
}

func NewError(playerID, message string) Event {
	return Event{
		Name:    EventError,
		Target:  playerID,
		Payload: ErrorPayload{Error: message},
	}
}
