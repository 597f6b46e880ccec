package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
	"github.com/rocketscienceinc/labyrinth-backend/internal/pkg"
	"github.com/rocketscienceinc/labyrinth-backend/internal/protocol"
)

const shutdownTimeout = 5 * time.Second

type sessionManager interface {
	Start(ctx context.Context, roomID string, complexity int) (string, []protocol.Event, error)
	Join(ctx context.Context, roomID, playerID string) ([]protocol.Event, error)
	Move(ctx context.Context, roomID, playerID string, direction entity.Direction) ([]protocol.Event, error)
	Leave(ctx context.Context, roomID, playerID string) ([]protocol.Event, error)
	Release(ctx context.Context, roomID string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, membership *entity.Membership) error
	DeleteByID(ctx context.Context, playerID string) error
}

type handlerFunc func(ctx context.Context, c *client, req *protocol.Request) error

type Server struct {
	logger   *slog.Logger
	manager  sessionManager
	players  playerRepo
	hub      *Hub
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, manager sessionManager, players playerRepo, hub *Hub) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		players: players,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[protocol.ActionStart] = server.handleStart
	server.handlers[protocol.ActionJoin] = server.handleJoin
	server.handlers[protocol.ActionMove] = server.handleMove
	server.handlers[protocol.ActionLeave] = server.handleLeave

	return server
}

// Router serves the websocket endpoint at /ws.
func (that *Server) Router(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(that.logger, pkg.GeneratePlayerID(), conn)
	that.hub.register(c)

	go c.writePump()

	log.Info("websocket connection established", "playerID", c.id)

	that.hub.Send(c.id, protocol.NewConnected(c.id))

	that.handleMessages(ctx, c)
	that.handleDisconnect(c)
}

// handleMessages - processes messages from the client until the connection drops.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages", "playerID", c.id)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}
			return
		}

		var message protocol.Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.hub.Send(c.id, protocol.NewError(c.id, "malformed message"))
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.hub.Send(c.id, protocol.NewError(c.id, "unknown action: "+message.Action))
			continue
		}

		var request protocol.Request
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &request); err != nil {
				log.Warn("failed to unmarshal payload", "action", message.Action, "error", err)
				that.hub.Send(c.id, protocol.NewError(c.id, "malformed payload"))
				continue
			}
		}

		if err = handler(ctx, c, &request); err != nil {
			that.handleError(c, message.Action, err)
		}
	}
}

// handleDisconnect leaves every room the client followed.
func (that *Server) handleDisconnect(c *client) {
	log := that.logger.With("method", "handleDisconnect", "playerID", c.id)

	c.close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, roomID := range that.hub.unregister(c) {
		if _, err := that.manager.Leave(ctx, roomID, c.id); err != nil {
			log.Debug("leave on disconnect", "roomID", roomID, "error", err)
		}

		that.releaseUnfollowed(ctx, roomID)
	}

	if err := that.players.DeleteByID(ctx, c.id); err != nil {
		log.Error("failed to delete membership", "error", err)
	}

	log.Info("websocket connection closed")
}

// releaseUnfollowed drops a room no connection follows any more.
func (that *Server) releaseUnfollowed(ctx context.Context, roomID string) {
	if that.hub.hasFollowers(roomID) {
		return
	}

	if err := that.manager.Release(ctx, roomID); err != nil {
		that.logger.Debug("release room", "roomID", roomID, "error", err)
	}
}
