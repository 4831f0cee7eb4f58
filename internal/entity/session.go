package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/boardgames-backend/internal/game"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

var ErrReplay = errors.New("action log does not replay")

// Session is the stored form of one game: its configuration and the accepted actions in order.
// The engine state is rebuilt by replaying Actions.
type Session struct {
	ID        string        `json:"id"`
	Config    game.Config   `json:"config"`
	Actions   []game.Action `json:"actions"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewSession(id string, conf game.Config, now time.Time) *Session {
	return &Session{
		ID:        id,
		Config:    conf,
		Actions:   []game.Action{},
		Status:    StatusOngoing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record appends an accepted action.
func (that *Session) Record(action game.Action, finished bool, now time.Time) {
	that.Actions = append(that.Actions, action)
	that.UpdatedAt = now

	if finished {
		that.Status = StatusFinished
	}
}

// Clear drops the action log, keeping the configuration.
func (that *Session) Clear(now time.Time) {
	that.Actions = []game.Action{}
	that.Status = StatusOngoing
	that.UpdatedAt = now
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

// Replay rebuilds the engine state from the action log. It fails on the first action the engine rejects.
func (that *Session) Replay() (*game.State, error) {
	state, err := game.New(that.Config)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", that.ID, err)
	}

	for i, action := range that.Actions {
		if res := state.Apply(action); !res.Accepted {
			return nil, fmt.Errorf("%w: session %s action %d (%s) rejected %s",
				ErrReplay, that.ID, i+1, action, res.Reason)
		}
	}

	return state, nil
}
