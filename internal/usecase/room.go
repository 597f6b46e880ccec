package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/labyrinth-backend/internal/apperror"
	"github.com/rocketscienceinc/labyrinth-backend/internal/entity"
	"github.com/rocketscienceinc/labyrinth-backend/internal/labyrinth"
	"github.com/rocketscienceinc/labyrinth-backend/internal/protocol"
)

type transition func(controller *labyrinth.GameController) ([]protocol.Event, error)

// closeRule tells the room, right after a transition, whether it must stop.
type closeRule func(controller *labyrinth.GameController, err error) bool

type command struct {
	apply   transition
	closeIf closeRule
	reply   chan result
}

type result struct {
	events []protocol.Event
	err    error
}

// room owns one session. Every transition runs on the room's own goroutine in
// arrival order. The latest snapshot is handed to a second goroutine that
// writes it to storage; older unwritten snapshots are dropped.
type room struct {
	id       string
	logger   *slog.Logger
	notifier eventNotifier
	onClose  func(r *room)

	commands chan command

	pendingMutex sync.Mutex
	pending      *entity.Session
	written      chan struct{}

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// set by the room goroutine before stopped is closed
	purge bool
}

func newRoom(logger *slog.Logger, notifier eventNotifier, id string, queueSize int, onClose func(r *room)) *room {
	return &room{
		id:       id,
		logger:   logger.With("roomID", id),
		notifier: notifier,
		onClose:  onClose,
		commands: make(chan command, queueSize),
		written:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (that *room) run(controller *labyrinth.GameController) {
	defer close(that.stopped)

	for {
		select {
		case cmd := <-that.commands:
			if that.apply(controller, cmd) {
				that.stop(controller)
				return
			}
		case <-that.done:
			that.stop(controller)
			return
		}
	}
}

// apply runs one command and reports whether the room closed itself.
func (that *room) apply(controller *labyrinth.GameController, cmd command) bool {
	version := controller.Version()

	events, err := cmd.apply(controller)

	if controller.Version() != version {
		that.stage(controller.Snapshot())
	}

	if len(events) > 0 {
		that.notifier.Publish(that.id, events)
	}

	closing := cmd.closeIf != nil && cmd.closeIf(controller, err)
	if closing {
		that.close()
		that.onClose(that)
	}

	cmd.reply <- result{events: events, err: err}

	return closing
}

// stop rejects whatever is still queued and decides whether the stored
// snapshot outlives the room. Only finished games are kept.
func (that *room) stop(controller *labyrinth.GameController) {
	that.purge = controller.Version() > 0 && !controller.IsFinished()

	for {
		select {
		case cmd := <-that.commands:
			cmd.reply <- result{err: apperror.ErrSessionNotFound}
		default:
			return
		}
	}
}

func (that *room) stage(snapshot *entity.Session) {
	that.pendingMutex.Lock()
	that.pending = snapshot
	that.pendingMutex.Unlock()

	select {
	case that.written <- struct{}{}:
	default:
	}
}

func (that *room) takePending() *entity.Session {
	that.pendingMutex.Lock()
	defer that.pendingMutex.Unlock()

	snapshot := that.pending
	that.pending = nil

	return snapshot
}

// persist writes staged snapshots until the room stops, then flushes the last
// one and removes the stored copy when the room asked for it.
func (that *room) persist(ctx context.Context, repo sessionRepo, activeTTL, finishedTTL time.Duration) {
	log := that.logger.With("method", "persist")

	save := func() {
		snapshot := that.takePending()
		if snapshot == nil {
			return
		}

		ttl := activeTTL
		if snapshot.IsFinished() {
			ttl = finishedTTL
		}

		if err := repo.CreateOrUpdate(ctx, snapshot, ttl); err != nil {
			log.Error("failed to save session snapshot", "version", snapshot.Version, "error", err)
		}
	}

	for {
		select {
		case <-that.written:
			save()
		case <-that.stopped:
			save()

			if !that.purge {
				return
			}

			if err := repo.DeleteByID(ctx, that.id); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
				log.Error("failed to delete session snapshot", "error", err)
			}

			return
		}
	}
}

// submit queues the command. Once queued, the command always runs or is
// rejected by the room; ctx only bounds the wait for a queue slot.
func (that *room) submit(ctx context.Context, apply transition, closeIf closeRule) result {
	cmd := command{apply: apply, closeIf: closeIf, reply: make(chan result, 1)}

	select {
	case that.commands <- cmd:
	case <-that.done:
		return result{err: apperror.ErrSessionNotFound}
	case <-ctx.Done():
		return result{err: ctx.Err()}
	}

	select {
	case res := <-cmd.reply:
		return res
	case <-that.stopped:
		select {
		case res := <-cmd.reply:
			return res
		default:
			return result{err: apperror.ErrSessionNotFound}
		}
	}
}

func (that *room) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}
