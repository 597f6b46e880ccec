package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
	"github.com/rocketscienceinc/labyrinth-backend/internal/labyrinth"
	"github.com/rocketscienceinc/labyrinth-backend/internal/pkg"
	"github.com/rocketscienceinc/labyrinth-backend/internal/protocol"
)

const defaultQueueSize = 64

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session, ttl time.Duration) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// eventNotifier delivers the events of a room. Publish is called from the
// room goroutine in transition order and must not block.
type eventNotifier interface {
	Publish(roomID string, events []protocol.Event)
}

type discardNotifier struct{}

func (discardNotifier) Publish(string, []protocol.Event) {}

type Options struct {
	DefaultComplexity int
	MaxComplexity     int
	// Seed makes every room generate from the same sequence. Zero seeds from the clock.
	Seed        int64
	QueueSize   int
	ActiveTTL   time.Duration
	FinishedTTL time.Duration
}

// SessionManager is the registry of independent rooms keyed by room id.
type SessionManager struct {
	logger   *slog.Logger
	repo     sessionRepo
	notifier eventNotifier
	opts     Options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	roomsMutex sync.RWMutex
	rooms      map[string]*room
}

// NewSessionManager builds an empty registry. A nil notifier drops events.
func NewSessionManager(logger *slog.Logger, repo sessionRepo, notifier eventNotifier, opts Options) *SessionManager {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	if notifier == nil {
		notifier = discardNotifier{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &SessionManager{
		logger:   logger.With("component", "session_manager"),
		repo:     repo,
		notifier: notifier,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		rooms:    make(map[string]*room),
	}
}

// Start generates a new maze in the room, creating the room when needed. An
// empty roomID creates a room with a generated id. A zero complexity falls
// back to the configured default. A room whose first start fails is dropped.
func (that *SessionManager) Start(ctx context.Context, roomID string, complexity int) (string, []protocol.Event, error) {
	if roomID == "" {
		roomID = pkg.GenerateRoomID()
	}

	if complexity == 0 {
		complexity = that.opts.DefaultComplexity
	}

	apply := func(controller *labyrinth.GameController) ([]protocol.Event, error) {
		return controller.Start(complexity)
	}
	closeIf := func(controller *labyrinth.GameController, err error) bool {
		return err != nil && controller.IsIdle()
	}

	res := that.getOrCreateRoom(roomID).submit(ctx, apply, closeIf)
	if errors.Is(res.err, apperror.ErrSessionNotFound) {
		// the room closed between lookup and submit
		res = that.getOrCreateRoom(roomID).submit(ctx, apply, closeIf)
	}

	if res.err != nil {
		return roomID, nil, fmt.Errorf("failed to start game in room %s: %w", roomID, res.err)
	}

	that.logger.Info("game started", "roomID", roomID, "complexity", complexity)

	return roomID, res.events, nil
}

func (that *SessionManager) Join(ctx context.Context, roomID, playerID string) ([]protocol.Event, error) {
	res, err := that.dispatch(ctx, roomID, func(controller *labyrinth.GameController) ([]protocol.Event, error) {
		return controller.Join(playerID)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", roomID, err)
	}

	return res.events, nil
}

func (that *SessionManager) Move(ctx context.Context, roomID, playerID string, direction entity.Direction) ([]protocol.Event, error) {
	res, err := that.dispatch(ctx, roomID, func(controller *labyrinth.GameController) ([]protocol.Event, error) {
		return controller.Move(playerID, direction)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to move in room %s: %w", roomID, err)
	}

	if hasGameOver(res.events) {
		that.logger.Info("game finished", "roomID", roomID, "winner", playerID)
	}

	return res.events, nil
}

// Leave removes the player. The last player leaving closes the room before
// any later command runs; an unfinished room also loses its stored snapshot.
func (that *SessionManager) Leave(ctx context.Context, roomID, playerID string) ([]protocol.Event, error) {
	res, err := that.dispatch(ctx, roomID, func(controller *labyrinth.GameController) ([]protocol.Event, error) {
		return controller.Leave(playerID)
	}, func(controller *labyrinth.GameController, err error) bool {
		return err == nil && controller.PlayerCount() == 0
	})
	if err != nil {
		return nil, fmt.Errorf("failed to leave room %s: %w", roomID, err)
	}

	return res.events, nil
}

// Release closes the room if nobody has joined it. Callers use it once no
// connection follows the room any more.
func (that *SessionManager) Release(ctx context.Context, roomID string) error {
	_, err := that.dispatch(ctx, roomID, func(*labyrinth.GameController) ([]protocol.Event, error) {
		return nil, nil
	}, func(controller *labyrinth.GameController, _ error) bool {
		return controller.PlayerCount() == 0
	})
	if err != nil {
		return fmt.Errorf("failed to release room %s: %w", roomID, err)
	}

	return nil
}

// Snapshot returns the live session of the room, or the stored snapshot of a
// room that is no longer live.
func (that *SessionManager) Snapshot(ctx context.Context, roomID string) (*entity.Session, error) {
	that.roomsMutex.RLock()
	r, ok := that.rooms[roomID]
	that.roomsMutex.RUnlock()

	if ok {
		var snapshot *entity.Session
		res := r.submit(ctx, func(controller *labyrinth.GameController) ([]protocol.Event, error) {
			snapshot = controller.Snapshot()
			return nil, nil
		}, nil)
		if res.err == nil {
			return snapshot, nil
		}

		if !errors.Is(res.err, apperror.ErrSessionNotFound) {
			return nil, res.err
		}
	}

	session, err := that.repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", roomID, err)
	}

	return session, nil
}

// Rooms lists the ids of live rooms in lexical order.
func (that *SessionManager) Rooms() []string {
	that.roomsMutex.RLock()
	defer that.roomsMutex.RUnlock()

	ids := make([]string, 0, len(that.rooms))
	for id := range that.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Close stops every room and waits for their storage writes. Snapshots of
// unfinished games are removed since nothing resumes them.
func (that *SessionManager) Close() {
	that.roomsMutex.Lock()
	for id, r := range that.rooms {
		r.close()
		delete(that.rooms, id)
	}
	that.roomsMutex.Unlock()

	that.wg.Wait()
	that.cancel()

	that.logger.Info("session manager stopped")
}

func (that *SessionManager) dispatch(ctx context.Context, roomID string, apply transition, closeIf closeRule) (result, error) {
	that.roomsMutex.RLock()
	r, ok := that.rooms[roomID]
	that.roomsMutex.RUnlock()

	if !ok {
		return result{}, apperror.ErrSessionNotFound
	}

	res := r.submit(ctx, apply, closeIf)
	if res.err != nil {
		return res, res.err
	}

	return res, nil
}

func (that *SessionManager) getOrCreateRoom(roomID string) *room {
	that.roomsMutex.Lock()
	defer that.roomsMutex.Unlock()

	if r, ok := that.rooms[roomID]; ok {
		return r
	}

	seed := that.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	generator := labyrinth.NewGenerator(rand.New(rand.NewSource(seed)), that.opts.MaxComplexity) //nolint: gosec // mazes are not secrets
	controller := labyrinth.NewGameController(entity.NewSession(roomID), generator)

	r := newRoom(that.logger, that.notifier, roomID, that.opts.QueueSize, that.forget)
	that.rooms[roomID] = r

	that.wg.Add(2)
	go func() {
		defer that.wg.Done()
		r.run(controller)
	}()
	go func() {
		defer that.wg.Done()
		r.persist(that.ctx, that.repo, that.opts.ActiveTTL, that.opts.FinishedTTL)
	}()

	that.logger.Debug("room created", "roomID", roomID)

	return r
}

// forget drops a room that closed itself. A newer room under the same id stays.
func (that *SessionManager) forget(r *room) {
	that.roomsMutex.Lock()
	defer that.roomsMutex.Unlock()

	if that.rooms[r.id] == r {
		delete(that.rooms, r.id)
		that.logger.Debug("room closed", "roomID", r.id)
	}
}

func hasGameOver(events []protocol.Event) bool {
	for _, event := range events {
		if event.Name == protocol.EventGameOver {
			return true
		}
	}

	return false
}
