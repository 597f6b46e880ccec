package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
	mockedRest "github.com/rocketscienceinc/labyrinth-backend/mocks/rest"
)

var errRedisDown = errors.New("redis down")

func serve(t *testing.T, sessions *mockedRest.MocksessionReader, players *mockedRest.MockmembershipReader, target string) *httptest.ResponseRecorder {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	router := NewRouter(NewHandlers(logger, sessions, players))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	return recorder
}

func sessionWithPlayer() *entity.Session {
	session := entity.NewSession("r1")
	session.Status = entity.StatusActive

	player := entity.NewPlayer("p1", entity.Coordinate{Row: 1, Col: 1})
	player.MoveTo(entity.Coordinate{Row: 1, Col: 2})
	session.Players["p1"] = player

	return session
}

func TestPing(t *testing.T) {
	// When: /ping is requested
	recorder := serve(t, mockedRest.NewMocksessionReader(t), mockedRest.NewMockmembershipReader(t), "/ping")

	// Then: pong is returned
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestHandlers_ListRooms(t *testing.T) {
	// Given: two live rooms
	sessions := mockedRest.NewMocksessionReader(t)
	sessions.EXPECT().Rooms().Return([]string{"a", "b"}).Once()

	// When: /rooms is requested
	recorder := serve(t, sessions, mockedRest.NewMockmembershipReader(t), "/rooms")

	// Then: both ids are listed
	require.Equal(t, http.StatusOK, recorder.Code)

	var response RoomsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, []string{"a", "b"}, response.Rooms)
}

func TestHandlers_GetRoom(t *testing.T) {
	t.Run("Returns the session", func(t *testing.T) {
		// Given: a live room
		sessions := mockedRest.NewMocksessionReader(t)
		sessions.EXPECT().Snapshot(mock.Anything, "r1").Return(sessionWithPlayer(), nil).Once()

		// When: the room is requested
		recorder := serve(t, sessions, mockedRest.NewMockmembershipReader(t), "/rooms/r1")

		// Then: the session is returned
		require.Equal(t, http.StatusOK, recorder.Code)

		var session entity.Session
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &session))
		assert.Equal(t, entity.StatusActive, session.Status)
		assert.Contains(t, session.Players, "p1")
	})

	t.Run("Unknown room is 404", func(t *testing.T) {
		// Given: no such room
		sessions := mockedRest.NewMocksessionReader(t)
		sessions.EXPECT().Snapshot(mock.Anything, "nope").Return(nil, apperror.ErrSessionNotFound).Once()

		// When: the room is requested
		recorder := serve(t, sessions, mockedRest.NewMockmembershipReader(t), "/rooms/nope")

		// Then: 404 is returned
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Storage failure is 500", func(t *testing.T) {
		// Given: the storage is down
		sessions := mockedRest.NewMocksessionReader(t)
		sessions.EXPECT().Snapshot(mock.Anything, "r1").Return(nil, errRedisDown).Once()

		// When: the room is requested
		recorder := serve(t, sessions, mockedRest.NewMockmembershipReader(t), "/rooms/r1")

		// Then: 500 is returned without the cause
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), errRedisDown.Error())
	})
}

func TestHandlers_GetRoomPlayer(t *testing.T) {
	t.Run("Returns position and trail", func(t *testing.T) {
		// Given: a room with a player that moved once
		sessions := mockedRest.NewMocksessionReader(t)
		sessions.EXPECT().Snapshot(mock.Anything, "r1").Return(sessionWithPlayer(), nil).Once()

		// When: the player is requested
		recorder := serve(t, sessions, mockedRest.NewMockmembershipReader(t), "/rooms/r1/players/p1")

		// Then: the trail holds both cells
		require.Equal(t, http.StatusOK, recorder.Code)

		var player entity.Player
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &player))
		assert.Equal(t, entity.Coordinate{Row: 1, Col: 2}, player.Position)
		assert.Equal(t, []entity.Coordinate{{Row: 1, Col: 1}, {Row: 1, Col: 2}}, player.Trail)
	})

	t.Run("Unknown player is 404", func(t *testing.T) {
		// Given: a room without that player
		sessions := mockedRest.NewMocksessionReader(t)
		sessions.EXPECT().Snapshot(mock.Anything, "r1").Return(sessionWithPlayer(), nil).Once()

		// When: another player is requested
		recorder := serve(t, sessions, mockedRest.NewMockmembershipReader(t), "/rooms/r1/players/ghost")

		// Then: 404 is returned
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandlers_GetPlayer(t *testing.T) {
	t.Run("Resolves room and position", func(t *testing.T) {
		// Given: a player in a live room
		players := mockedRest.NewMockmembershipReader(t)
		players.EXPECT().GetByID(mock.Anything, "p1").Return(&entity.Membership{PlayerID: "p1", RoomID: "r1"}, nil).Once()

		sessions := mockedRest.NewMocksessionReader(t)
		sessions.EXPECT().Snapshot(mock.Anything, "r1").Return(sessionWithPlayer(), nil).Once()

		// When: the player is requested
		recorder := serve(t, sessions, players, "/players/p1")

		// Then: room and position are returned
		require.Equal(t, http.StatusOK, recorder.Code)

		var response PlayerResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "r1", response.RoomID)
		require.NotNil(t, response.Position)
		assert.Equal(t, entity.Coordinate{Row: 1, Col: 2}, *response.Position)
	})

	t.Run("Room that is gone still resolves membership", func(t *testing.T) {
		// Given: a membership whose room no longer exists
		players := mockedRest.NewMockmembershipReader(t)
		players.EXPECT().GetByID(mock.Anything, "p1").Return(&entity.Membership{PlayerID: "p1", RoomID: "old"}, nil).Once()

		sessions := mockedRest.NewMocksessionReader(t)
		sessions.EXPECT().Snapshot(mock.Anything, "old").Return(nil, apperror.ErrSessionNotFound).Once()

		// When: the player is requested
		recorder := serve(t, sessions, players, "/players/p1")

		// Then: the room id is returned without a position
		require.Equal(t, http.StatusOK, recorder.Code)

		var response PlayerResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "old", response.RoomID)
		assert.Nil(t, response.Position)
	})

	t.Run("Unknown player is 404", func(t *testing.T) {
		// Given: no membership
		players := mockedRest.NewMockmembershipReader(t)
		players.EXPECT().GetByID(mock.Anything, "ghost").Return(nil, apperror.ErrPlayerNotFound).Once()

		// When: the player is requested
		recorder := serve(t, mockedRest.NewMocksessionReader(t), players, "/players/ghost")

		// Then: 404 is returned
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
