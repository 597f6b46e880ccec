package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
	"github.com/rocketscienceinc/labyrinth-backend/internal/protocol"
	"github.com/rocketscienceinc/labyrinth-backend/internal/usecase"
	mockedUseCase "github.com/rocketscienceinc/labyrinth-backend/mocks/usecase"
	mockedWebsocket "github.com/rocketscienceinc/labyrinth-backend/mocks/websocket"
)

const readTimeout = 2 * time.Second

func newTestServer(t *testing.T) (string, *mockedWebsocket.MockplayerRepo, *usecase.SessionManager) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	sessions := mockedUseCase.NewMocksessionRepo(t)
	sessions.EXPECT().CreateOrUpdate(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	sessions.EXPECT().DeleteByID(mock.Anything, mock.Anything).Return(nil).Maybe()

	players := mockedWebsocket.NewMockplayerRepo(t)
	players.EXPECT().CreateOrUpdate(mock.Anything, mock.Anything).Return(nil).Maybe()
	players.EXPECT().DeleteByID(mock.Anything, mock.Anything).Return(nil).Maybe()

	hub := NewHub(logger)
	manager := usecase.NewSessionManager(logger, sessions, hub, usecase.Options{
		DefaultComplexity: 3,
		MaxComplexity:     20,
		Seed:              7,
	})
	t.Cleanup(manager.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ts := httptest.NewServer(New(logger, manager, players, hub).Router(ctx))
	t.Cleanup(ts.Close)

	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws", players, manager
}

// dial connects and consumes the greeting, returning the assigned player id.
func dial(t *testing.T, url string) (*websocket.Conn, string) {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	var connected protocol.ConnectedPayload
	readEvent(t, conn, protocol.EventConnected, &connected)
	require.NotEmpty(t, connected.PlayerID)

	return conn, connected.PlayerID
}

func send(t *testing.T, conn *websocket.Conn, action string, req protocol.Request) {
	t.Helper()

	payload, err := json.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(protocol.Message{Action: action, Payload: payload}))
}

func readEvent(t *testing.T, conn *websocket.Conn, name string, payload any) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))

	var message protocol.Message
	require.NoError(t, conn.ReadJSON(&message))
	require.Equal(t, name, message.Action, "payload: %s", message.Payload)

	if payload != nil {
		require.NoError(t, json.Unmarshal(message.Payload, payload))
	}
}

// openDirection finds a step out of the entrance.
func openDirection(t *testing.T, maze protocol.MazeReadyPayload) entity.Direction {
	t.Helper()

	for _, direction := range entity.Directions {
		cell, err := maze.Grid.CellAt(maze.Entrance.Step(direction))
		if err == nil && !cell.IsWall() {
			return direction
		}
	}

	t.Fatal("entrance has no open neighbour")

	return ""
}

func TestServer_Connect(t *testing.T) {
	url, _, _ := newTestServer(t)

	// When: two clients connect
	_, first := dial(t, url)
	_, second := dial(t, url)

	// Then: each one gets its own player id
	assert.NotEqual(t, first, second)
}

func TestServer_StartJoinMove(t *testing.T) {
	url, players, _ := newTestServer(t)
	conn, playerID := dial(t, url)

	// Given: a started room
	send(t, conn, protocol.ActionStart, protocol.Request{RoomID: "r1", Complexity: 2})

	var maze protocol.MazeReadyPayload
	readEvent(t, conn, protocol.EventMazeReady, &maze)
	readEvent(t, conn, protocol.EventPlayersUpdated, nil)

	rows, cols := maze.Grid.Dimensions()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 5, cols)

	// When: the client joins
	send(t, conn, protocol.ActionJoin, protocol.Request{RoomID: "r1"})

	// Then: it gets the maze and sees itself at the entrance
	readEvent(t, conn, protocol.EventMazeReady, nil)

	var positions protocol.PlayersUpdatedPayload
	readEvent(t, conn, protocol.EventPlayersUpdated, &positions)
	assert.Equal(t, map[string]entity.Coordinate{playerID: maze.Entrance}, positions.Players)

	// And: a legal move is broadcast
	direction := openDirection(t, maze)
	send(t, conn, protocol.ActionMove, protocol.Request{RoomID: "r1", Direction: string(direction)})

	readEvent(t, conn, protocol.EventPlayersUpdated, &positions)
	assert.Equal(t, maze.Entrance.Step(direction), positions.Players[playerID])

	players.AssertCalled(t, "CreateOrUpdate", mock.Anything, &entity.Membership{PlayerID: playerID, RoomID: "r1"})
}

func TestServer_RejectedMove(t *testing.T) {
	url, _, _ := newTestServer(t)
	conn, _ := dial(t, url)

	// Given: a joined player
	send(t, conn, protocol.ActionStart, protocol.Request{RoomID: "r1", Complexity: 2})

	var maze protocol.MazeReadyPayload
	readEvent(t, conn, protocol.EventMazeReady, &maze)
	readEvent(t, conn, protocol.EventPlayersUpdated, nil)

	send(t, conn, protocol.ActionJoin, protocol.Request{RoomID: "r1"})
	readEvent(t, conn, protocol.EventMazeReady, nil)
	readEvent(t, conn, protocol.EventPlayersUpdated, nil)

	// When: the player walks into the border
	send(t, conn, protocol.ActionMove, protocol.Request{RoomID: "r1", Direction: string(entity.DirectionUp)})

	// Then: only the mover is told and keeps its position
	var rejected protocol.MoveRejectedPayload
	readEvent(t, conn, protocol.EventMoveRejected, &rejected)
	assert.Equal(t, maze.Entrance, rejected.Position)
	assert.Equal(t, entity.DirectionUp, rejected.Direction)
}

func TestServer_Errors(t *testing.T) {
	url, _, _ := newTestServer(t)
	conn, _ := dial(t, url)

	t.Run("Unknown action", func(t *testing.T) {
		// When: the client sends an action the server does not know
		send(t, conn, "fly", protocol.Request{})

		// Then: an error event is returned
		var payload protocol.ErrorPayload
		readEvent(t, conn, protocol.EventError, &payload)
		assert.Contains(t, payload.Error, "fly")
	})

	t.Run("Join of a missing room", func(t *testing.T) {
		// When: the client joins a room nobody started
		send(t, conn, protocol.ActionJoin, protocol.Request{RoomID: "nowhere"})

		// Then: an error event names the problem
		var payload protocol.ErrorPayload
		readEvent(t, conn, protocol.EventError, &payload)
		assert.Contains(t, payload.Error, "session not found")
	})

	t.Run("Invalid complexity", func(t *testing.T) {
		// When: the client starts with complexity 1
		send(t, conn, protocol.ActionStart, protocol.Request{RoomID: "r2", Complexity: 1})

		// Then: an error event is returned
		var payload protocol.ErrorPayload
		readEvent(t, conn, protocol.EventError, &payload)
		assert.Contains(t, payload.Error, "invalid maze complexity")
	})

	t.Run("Invalid direction", func(t *testing.T) {
		// When: the client moves diagonally
		send(t, conn, protocol.ActionMove, protocol.Request{RoomID: "r1", Direction: "north-east"})

		// Then: an error event is returned
		var payload protocol.ErrorPayload
		readEvent(t, conn, protocol.EventError, &payload)
		assert.Contains(t, payload.Error, "invalid direction")
	})

	t.Run("Move from a player outside the room is ignored", func(t *testing.T) {
		// Given: a started room the client never joined
		send(t, conn, protocol.ActionStart, protocol.Request{RoomID: "r3", Complexity: 2})
		readEvent(t, conn, protocol.EventMazeReady, nil)
		readEvent(t, conn, protocol.EventPlayersUpdated, nil)

		// When: the client moves and then sends a bad action
		send(t, conn, protocol.ActionMove, protocol.Request{RoomID: "r3", Direction: "down"})
		send(t, conn, "fly", protocol.Request{})

		// Then: the first reply belongs to the bad action
		readEvent(t, conn, protocol.EventError, nil)
	})
}

func TestServer_TwoPlayers(t *testing.T) {
	url, _, _ := newTestServer(t)

	host, hostID := dial(t, url)
	guest, guestID := dial(t, url)

	// Given: the host started and joined a room
	send(t, host, protocol.ActionStart, protocol.Request{RoomID: "shared", Complexity: 3})
	readEvent(t, host, protocol.EventMazeReady, nil)
	readEvent(t, host, protocol.EventPlayersUpdated, nil)

	send(t, host, protocol.ActionJoin, protocol.Request{RoomID: "shared"})
	readEvent(t, host, protocol.EventMazeReady, nil)
	readEvent(t, host, protocol.EventPlayersUpdated, nil)

	// When: the guest joins
	send(t, guest, protocol.ActionJoin, protocol.Request{RoomID: "shared"})

	// Then: both see two players, only the guest gets the maze again
	readEvent(t, guest, protocol.EventMazeReady, nil)

	var positions protocol.PlayersUpdatedPayload
	readEvent(t, guest, protocol.EventPlayersUpdated, &positions)
	assert.Len(t, positions.Players, 2)

	readEvent(t, host, protocol.EventPlayersUpdated, &positions)
	assert.Contains(t, positions.Players, hostID)
	assert.Contains(t, positions.Players, guestID)

	// And: when the guest disconnects, the host sees it leave
	require.NoError(t, guest.Close())

	readEvent(t, host, protocol.EventPlayersUpdated, &positions)
	assert.Equal(t, []string{hostID}, keys(positions.Players))
}

func TestServer_ReleasesUnfollowedRooms(t *testing.T) {
	t.Run("Starter disconnects without joining", func(t *testing.T) {
		url, _, manager := newTestServer(t)
		conn, _ := dial(t, url)

		// Given: a room started by a client that never joined it
		send(t, conn, protocol.ActionStart, protocol.Request{RoomID: "orphan", Complexity: 2})
		readEvent(t, conn, protocol.EventMazeReady, nil)
		readEvent(t, conn, protocol.EventPlayersUpdated, nil)
		require.Equal(t, []string{"orphan"}, manager.Rooms())

		// When: the client disconnects
		require.NoError(t, conn.Close())

		// Then: the room is closed
		require.Eventually(t, func() bool {
			return len(manager.Rooms()) == 0
		}, readTimeout, 10*time.Millisecond)
	})

	t.Run("Room a connection still follows stays", func(t *testing.T) {
		url, _, manager := newTestServer(t)
		starter, _ := dial(t, url)
		watcher, _ := dial(t, url)

		// Given: a started room, a second client joined it
		send(t, starter, protocol.ActionStart, protocol.Request{RoomID: "kept", Complexity: 2})
		readEvent(t, starter, protocol.EventMazeReady, nil)
		readEvent(t, starter, protocol.EventPlayersUpdated, nil)

		send(t, watcher, protocol.ActionJoin, protocol.Request{RoomID: "kept"})
		readEvent(t, watcher, protocol.EventMazeReady, nil)
		readEvent(t, watcher, protocol.EventPlayersUpdated, nil)

		// When: the starter disconnects
		require.NoError(t, starter.Close())

		// Then: the room stays for the joined player
		require.Never(t, func() bool {
			return len(manager.Rooms()) == 0
		}, 200*time.Millisecond, 10*time.Millisecond)
	})
}

func keys(positions map[string]entity.Coordinate) []string {
	result := make([]string, 0, len(positions))
	for id := range positions {
		result = append(result, id)
	}

	return result
}
