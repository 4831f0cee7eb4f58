package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgames-backend/internal/entity"
	"github.com/rocketscienceinc/boardgames-backend/internal/game"
	"github.com/rocketscienceinc/boardgames-backend/testing/suite"
)

func newSession(id string) *entity.Session {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	session := entity.NewSession(id, game.Config{Kind: game.KindGo, BoardSize: 9}, now)
	session.Record(game.Place(4, 4), false, now)
	session.Record(game.Pass(), false, now)

	return session
}

// testSessionRepository runs the behaviour every SessionRepository shares.
func testSessionRepository(ctx context.Context, t *testing.T, repo SessionRepository) {
	t.Helper()

	t.Run("GetByID_Success", func(t *testing.T) {
		// Given: a stored session
		session := newSession("123")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with its ID
		retrieved, err := repo.GetByID(ctx, session.ID)

		// Then: the record round-trips
		require.NoError(t, err)
		assert.Equal(t, session, retrieved)
	})

	t.Run("CreateOrUpdate_Overwrites", func(t *testing.T) {
		session := newSession("456")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		session.Record(game.Pass(), true, session.UpdatedAt)
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		retrieved, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Len(t, retrieved.Actions, 3)
		assert.True(t, retrieved.IsFinished())
	})

	t.Run("Returned records are copies", func(t *testing.T) {
		session := newSession("789")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		retrieved, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		retrieved.Actions = nil

		again, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Len(t, again.Actions, 2)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		// When: GetByID is called with a non-existent ID
		retrieved, err := repo.GetByID(ctx, "9999999")

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("DeleteByID_Success", func(t *testing.T) {
		session := newSession("321")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		require.NoError(t, repo.DeleteByID(ctx, session.ID))

		_, err := repo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		err := repo.DeleteByID(ctx, "9999999")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	testSessionRepository(context.Background(), t, NewMemorySessionRepository())
}

func TestRedisSessionRepository(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewSessionRepository(st.Storage, st.Redis.KeyPrefix, time.Hour)
	testSessionRepository(ctx, t, repo)

	t.Run("Key layout and TTL", func(t *testing.T) {
		require.NoError(t, repo.CreateOrUpdate(ctx, newSession("abc")))

		ttl, err := st.Storage.TTL(ctx, "test:session:abc").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 59*time.Minute)
	})
}
