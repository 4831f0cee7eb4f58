package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames-backend/internal/game"
)

func TestSession_Replay(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Rebuilds the position", func(t *testing.T) {
		// Given: a Go session with a capture and two passes
		session := NewSession("s1", game.Config{Kind: game.KindGo, BoardSize: 9}, now)
		for _, a := range []game.Action{game.Place(0, 1), game.Place(0, 0), game.Place(1, 0), game.Pass()} {
			session.Record(a, false, now)
		}
		session.Record(game.Pass(), true, now.Add(time.Minute))

		// When: it is replayed
		state, err := session.Replay()

		// Then: the engine reaches the same end state
		require.NoError(t, err)
		assert.True(t, state.IsOver())
		assert.Equal(t, 1, state.View().Captures["black"])
		assert.True(t, session.IsFinished())
		assert.Equal(t, now.Add(time.Minute), session.UpdatedAt)
	})

	t.Run("Rejected action", func(t *testing.T) {
		// Given: a log with a move onto an occupied point
		session := NewSession("s2", game.Config{Kind: game.KindGo, BoardSize: 9}, now)
		session.Record(game.Place(4, 4), false, now)
		session.Record(game.Place(4, 4), false, now)

		// When: it is replayed
		_, err := session.Replay()

		// Then: replay fails
		require.ErrorIs(t, err, ErrReplay)
	})

	t.Run("Bad configuration", func(t *testing.T) {
		session := NewSession("s3", game.Config{Kind: game.KindGo, BoardSize: 4}, now)

		_, err := session.Replay()
		require.Error(t, err)
	})

	t.Run("Xiangqi", func(t *testing.T) {
		session := NewSession("s4", game.Config{Kind: game.KindXiangqi}, now)
		session.Record(game.Move(7, 1, 7, 4), false, now)

		state, err := session.Replay()
		require.NoError(t, err)
		assert.Equal(t, "black", state.View().ToMove)
	})
}

func TestSession_Clear(t *testing.T) {
	now := time.Now()

	// Given: a finished session
	session := NewSession("s1", game.Config{Kind: game.KindGo, BoardSize: 9}, now)
	session.Record(game.Pass(), false, now)
	session.Record(game.Pass(), true, now)
	require.True(t, session.IsFinished())

	// When: it is cleared
	session.Clear(now)

	// Then: only the configuration survives
	assert.Empty(t, session.Actions)
	assert.Equal(t, StatusOngoing, session.Status)
	assert.Equal(t, 9, session.Config.BoardSize)
}
