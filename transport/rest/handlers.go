package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
)

type sessionReader interface {
	Snapshot(ctx context.Context, roomID string) (*entity.Session, error)
	Rooms() []string
}

type membershipReader interface {
	GetByID(ctx context.Context, playerID string) (*entity.Membership, error)
}

type Handlers interface {
	ListRooms(w http.ResponseWriter, r *http.Request)
	GetRoom(w http.ResponseWriter, r *http.Request)
	GetRoomPlayer(w http.ResponseWriter, r *http.Request)
	GetPlayer(w http.ResponseWriter, r *http.Request)
}

type RoomsResponse struct {
	Rooms []string `json:"rooms"`
}

type PlayerResponse struct {
	PlayerID string             `json:"player_id"`
	RoomID   string             `json:"room_id"`
	Position *entity.Coordinate `json:"position,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionReader
	players  membershipReader
}

func NewHandlers(logger *slog.Logger, sessions sessionReader, players membershipReader) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
		players:  players,
	}
}

func (that *handlers) ListRooms(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, RoomsResponse{Rooms: that.sessions.Rooms()})
}

// GetRoom returns the live session, or the stored one of a closed room.
func (that *handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.Snapshot(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

// GetRoomPlayer returns the player's position and trail.
func (that *handlers) GetRoomPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	session, err := that.sessions.Snapshot(r.Context(), vars["id"])
	if err != nil {
		that.writeError(w, err)
		return
	}

	player, ok := session.Players[vars["playerID"]]
	if !ok {
		that.writeError(w, apperror.ErrPlayerNotFound)
		return
	}

	that.writeJSON(w, http.StatusOK, player)
}

// GetPlayer resolves the room a player last joined.
func (that *handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	membership, err := that.players.GetByID(r.Context(), mux.Vars(r)["playerID"])
	if err != nil {
		that.writeError(w, err)
		return
	}

	response := PlayerResponse{PlayerID: membership.PlayerID, RoomID: membership.RoomID}

	session, err := that.sessions.Snapshot(r.Context(), membership.RoomID)
	switch {
	case err == nil:
		if player, ok := session.Players[membership.PlayerID]; ok {
			position := player.Position
			response.Position = &position
		}
	case !errors.Is(err, apperror.ErrSessionNotFound):
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, response)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound), errors.Is(err, apperror.ErrPlayerNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("failed to serve request", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
