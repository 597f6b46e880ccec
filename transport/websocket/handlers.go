package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
	"github.com/rocketscienceinc/labyrinth-backend/internal/pkg"
	"github.com/rocketscienceinc/labyrinth-backend/internal/protocol"
)

var errRoomIDRequired = errors.New("room_id is required")

// requestErrors are reported back to the client verbatim.
var requestErrors = []error{
	errRoomIDRequired,
	apperror.ErrSessionNotFound,
	apperror.ErrGameIsNotStarted,
	apperror.ErrGameInProgress,
	apperror.ErrGameFinished,
	apperror.ErrInvalidComplexity,
	apperror.ErrInvalidDirection,
}

// handleStart generates a maze in the requested room. The starter follows the
// room so it receives the maze even before joining.
func (that *Server) handleStart(ctx context.Context, c *client, req *protocol.Request) error {
	roomID := req.RoomID
	if roomID == "" {
		roomID = pkg.GenerateRoomID()
	}

	followed := that.hub.follow(roomID, c.id)

	if _, _, err := that.manager.Start(ctx, roomID, req.Complexity); err != nil {
		if followed {
			that.hub.unfollow(roomID, c.id)
		}

		return err
	}

	return nil
}

func (that *Server) handleJoin(ctx context.Context, c *client, req *protocol.Request) error {
	log := that.logger.With("method", "handleJoin", "playerID", c.id)

	if req.RoomID == "" {
		return errRoomIDRequired
	}

	followed := that.hub.follow(req.RoomID, c.id)

	if _, err := that.manager.Join(ctx, req.RoomID, c.id); err != nil {
		if followed {
			that.hub.unfollow(req.RoomID, c.id)
		}

		return err
	}

	membership := &entity.Membership{PlayerID: c.id, RoomID: req.RoomID}
	if err := that.players.CreateOrUpdate(ctx, membership); err != nil {
		log.Error("failed to save membership", "roomID", req.RoomID, "error", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, c *client, req *protocol.Request) error {
	if req.RoomID == "" {
		return errRoomIDRequired
	}

	direction, err := entity.ParseDirection(req.Direction)
	if err != nil {
		return err
	}

	if _, err = that.manager.Move(ctx, req.RoomID, c.id, direction); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleLeave(ctx context.Context, c *client, req *protocol.Request) error {
	log := that.logger.With("method", "handleLeave", "playerID", c.id)

	if req.RoomID == "" {
		return errRoomIDRequired
	}

	that.hub.unfollow(req.RoomID, c.id)
	defer that.releaseUnfollowed(ctx, req.RoomID)

	if _, err := that.manager.Leave(ctx, req.RoomID, c.id); err != nil {
		return err
	}

	if err := that.players.DeleteByID(ctx, c.id); err != nil {
		log.Error("failed to delete membership", "roomID", req.RoomID, "error", err)
	}

	return nil
}

// handleError reports request errors to the client. Unknown players are
// ignored; anything else is an internal failure.
func (that *Server) handleError(c *client, action string, err error) {
	log := that.logger.With("method", "handleError", "playerID", c.id, "action", action)

	if errors.Is(err, apperror.ErrUnknownPlayer) {
		log.Warn("action from a player outside the session", "error", err)
		return
	}

	for _, requestErr := range requestErrors {
		if errors.Is(err, requestErr) {
			log.Debug("request rejected", "error", err)
			that.hub.Send(c.id, protocol.NewError(c.id, fmt.Sprintf("%s: %s", action, requestErr)))
			return
		}
	}

	log.Error("failed to process action", "error", err)
	that.hub.Send(c.id, protocol.NewError(c.id, action+": internal error"))
}
