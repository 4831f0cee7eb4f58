package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/boardgames-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgames-backend/internal/entity"
	"github.com/rocketscienceinc/boardgames-backend/internal/game"
	"github.com/rocketscienceinc/boardgames-backend/internal/metrics"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// Snapshot is what callers see of a session after each call.
type Snapshot struct {
	ID     string      `json:"id"`
	Config game.Config `json:"config"`
	View   game.View   `json:"view"`
}

// Outcome is the result of one submitted action together with the resulting position.
type Outcome struct {
	Snapshot
	Result game.Result `json:"result"`
}

// liveSession is a session loaded into memory. mu serialises every action on it.
type liveSession struct {
	mu      sync.Mutex
	evicted bool
	record  *entity.Session
	state   *game.State
}

// SessionManager owns one engine per session and keeps the stored action log in step with it.
type SessionManager struct {
	logger        *slog.Logger
	repo          sessionRepo
	metrics       *metrics.Metrics
	defaultGoSize int
	now           func() time.Time

	mu   sync.Mutex
	live map[string]*liveSession
}

func NewSessionManager(
	logger *slog.Logger, repo sessionRepo, m *metrics.Metrics, defaultGoSize int,
) *SessionManager {
	return &SessionManager{
		logger:        logger.With("component", "session-manager"),
		repo:          repo,
		metrics:       m,
		defaultGoSize: defaultGoSize,
		now:           time.Now,
		live:          make(map[string]*liveSession),
	}
}

// Create starts a new game. A Go config without a size gets the configured default.
func (that *SessionManager) Create(ctx context.Context, conf game.Config) (*Snapshot, error) {
	if conf.Kind == game.KindGo && conf.BoardSize == 0 {
		conf.BoardSize = that.defaultGoSize
	}

	state, err := game.New(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	record := entity.NewSession(uuid.NewString(), state.Config(), that.now())
	if err = that.repo.CreateOrUpdate(ctx, record); err != nil {
		that.logger.Error("could not store session", "session", record.ID, "error", err)

		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	that.mu.Lock()
	that.live[record.ID] = &liveSession{record: record, state: state}
	that.metrics.SetLive(len(that.live))
	that.mu.Unlock()

	that.metrics.SessionCreated(string(conf.Kind))

	that.logger.Info("session created", "session", record.ID, "kind", conf.Kind, "size", record.Config.BoardSize)

	return snapshot(record, state), nil
}

// Play submits any action. Rejected actions are reported in the Outcome and never stored.
func (that *SessionManager) Play(ctx context.Context, id string, action game.Action) (*Outcome, error) {
	live, err := that.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer live.mu.Unlock()

	res := live.state.Apply(action)
	that.metrics.Action(string(live.record.Config.Kind), res.Accepted, res.Reason)

	if !res.Accepted {
		that.logger.Debug("action rejected", "session", id, "action", action.String(), "reason", res.Reason)

		return &Outcome{Snapshot: *snapshot(live.record, live.state), Result: res}, nil
	}

	live.record.Record(action, live.state.IsOver(), that.now())
	if err = that.repo.CreateOrUpdate(ctx, live.record); err != nil {
		that.logger.Error("could not store action", "session", id, "action", action.String(), "error", err)
		that.evictLocked(id, live)

		return nil, fmt.Errorf("failed to store action: %w", err)
	}

	that.logger.Debug("action accepted", "session", id, "action", action.String(), "game_ended", res.GameEnded)

	return &Outcome{Snapshot: *snapshot(live.record, live.state), Result: res}, nil
}

func (that *SessionManager) Pass(ctx context.Context, id string) (*Outcome, error) {
	return that.Play(ctx, id, game.Pass())
}

func (that *SessionManager) View(ctx context.Context, id string) (*Snapshot, error) {
	live, err := that.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer live.mu.Unlock()

	return snapshot(live.record, live.state), nil
}

func (that *SessionManager) Score(ctx context.Context, id string) (game.Score, error) {
	live, err := that.acquire(ctx, id)
	if err != nil {
		return game.Score{}, err
	}
	defer live.mu.Unlock()

	score, err := live.state.Score()
	if err != nil {
		return game.Score{}, fmt.Errorf("session %s: %w", id, err)
	}

	return score, nil
}

func (that *SessionManager) LegalTargets(ctx context.Context, id string, from game.Coord) ([]game.Coord, error) {
	live, err := that.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer live.mu.Unlock()

	targets, err := live.state.LegalTargets(from)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return targets, nil
}

func (that *SessionManager) PieceAt(ctx context.Context, id string, at game.Coord) (game.PieceInfo, error) {
	live, err := that.acquire(ctx, id)
	if err != nil {
		return game.PieceInfo{}, err
	}
	defer live.mu.Unlock()

	info, err := live.state.PieceAt(at)
	if err != nil {
		return game.PieceInfo{}, fmt.Errorf("session %s: %w", id, err)
	}

	return info, nil
}

// Reset restarts the game in place, keeping its ID and configuration.
func (that *SessionManager) Reset(ctx context.Context, id string) (*Snapshot, error) {
	live, err := that.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer live.mu.Unlock()

	live.state.Reset()
	live.record.Clear(that.now())

	if err = that.repo.CreateOrUpdate(ctx, live.record); err != nil {
		that.logger.Error("could not store reset", "session", id, "error", err)
		that.evictLocked(id, live)

		return nil, fmt.Errorf("failed to store reset: %w", err)
	}

	that.logger.Info("session reset", "session", id)

	return snapshot(live.record, live.state), nil
}

func (that *SessionManager) Delete(ctx context.Context, id string) error {
	live, err := that.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer live.mu.Unlock()

	// The record goes first: a caller queued on live.mu must find nothing to reload once it is evicted.
	if err = that.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			that.evictLocked(id, live)
		} else {
			that.logger.Error("could not delete session", "session", id, "error", err)
		}

		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.evictLocked(id, live)

	that.logger.Info("session deleted", "session", id)

	return nil
}

// acquire returns the live session locked. The caller unlocks it.
func (that *SessionManager) acquire(ctx context.Context, id string) (*liveSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", apperror.ErrSessionNotFound, id)
	}

	for {
		that.mu.Lock()
		live, ok := that.live[id]
		if !ok {
			live = &liveSession{}
			that.live[id] = live
			that.metrics.SetLive(len(that.live))
		}
		that.mu.Unlock()

		live.mu.Lock()
		if live.evicted {
			live.mu.Unlock()

			continue
		}

		if live.state != nil {
			return live, nil
		}

		if err := that.load(ctx, id, live); err != nil {
			that.evictLocked(id, live)
			live.mu.Unlock()

			return nil, err
		}

		return live, nil
	}
}

// load fills live from the store by replaying the action log.
func (that *SessionManager) load(ctx context.Context, id string, live *liveSession) error {
	record, err := that.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperror.ErrSessionNotFound) {
			that.logger.Error("could not load session", "session", id, "error", err)
		}

		return fmt.Errorf("failed to load session: %w", err)
	}

	state, err := record.Replay()
	if err != nil {
		that.logger.Error("stored session does not replay", "session", id, "error", err)

		return fmt.Errorf("%w: %w", apperror.ErrCorruptSession, err)
	}

	that.logger.Debug("session replayed", "session", id, "actions", len(record.Actions))
	that.metrics.Replayed(len(record.Actions))

	live.record, live.state = record, state

	return nil
}

// evictLocked drops live from the cache. The caller holds live.mu.
func (that *SessionManager) evictLocked(id string, live *liveSession) {
	live.evicted = true

	that.mu.Lock()
	if that.live[id] == live {
		delete(that.live, id)
		that.metrics.SetLive(len(that.live))
	}
	that.mu.Unlock()
}

func snapshot(record *entity.Session, state *game.State) *Snapshot {
	return &Snapshot{
		ID:     record.ID,
		Config: record.Config,
		View:   state.View(),
	}
}
