package weiqi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, game *Game, points ...Point) {
	t.Helper()

	for _, p := range points {
		require.NoError(t, game.PlayMove(p.Row, p.Col), "play (%d,%d)", p.Row, p.Col)
	}
}

func TestNewGame(t *testing.T) {
	// When: a new 13x13 game is created
	game, err := NewGame(SizeMedium)
	require.NoError(t, err)

	// Then: black moves first on an empty board
	assert.Equal(t, Black, game.Turn())
	assert.Equal(t, StatusInProgress, game.Status())
	assert.Equal(t, 13, game.Size())
	assert.Empty(t, game.History())
	assert.Nil(t, game.LastMove())

	_, err = NewGame(7)
	require.ErrorIs(t, err, ErrInvalidBoardSize)
}

func TestGame_PlayMove(t *testing.T) {
	t.Run("Accepted move flips the turn", func(t *testing.T) {
		game, _ := NewGame(SizeSmall)

		err := game.PlayMove(2, 3)

		require.NoError(t, err)
		assert.Equal(t, Black, game.Board().At(2, 3))
		assert.Equal(t, White, game.Turn())
		assert.Equal(t, &Point{Row: 2, Col: 3}, game.LastMove())
		assert.Equal(t, []Move{{Number: 1, Color: Black, Point: Point{Row: 2, Col: 3}}}, game.History())
	})

	t.Run("Rejected move leaves the state unchanged", func(t *testing.T) {
		// Given: a game with one stone on (0,0)
		game, _ := NewGame(SizeSmall)
		play(t, game, Point{0, 0})
		before := game.Board()

		// When: white plays on the same point
		err := game.PlayMove(0, 0)

		// Then: the move is rejected as Occupied and nothing changed
		var moveErr *MoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, ReasonOccupied, moveErr.Reason)
		require.ErrorIs(t, err, ErrOccupied)
		assert.Equal(t, before, game.Board())
		assert.Equal(t, White, game.Turn())
		assert.Len(t, game.History(), 1)
	})

	t.Run("Out of range coordinates are rejected", func(t *testing.T) {
		game, _ := NewGame(SizeSmall)

		require.ErrorIs(t, game.PlayMove(-1, 4), ErrOutOfBounds)
		require.ErrorIs(t, game.PlayMove(4, 9), ErrOutOfBounds)
		assert.Equal(t, Black, game.Turn())
	})

	t.Run("Single stone capture credits one prisoner", func(t *testing.T) {
		// Given: a white stone at (1,1) with black on three sides
		game, _ := NewGame(SizeSmall)
		play(t, game,
			Point{0, 1}, Point{1, 1},
			Point{1, 0}, Point{8, 8},
			Point{1, 2}, Point{8, 7},
		)
		require.Equal(t, White, game.Board().At(1, 1))
		require.Equal(t, 0, game.Prisoners(Black))

		// When: black fills the fourth side
		play(t, game, Point{2, 1})

		// Then: the stone is removed and black has exactly one prisoner
		assert.Equal(t, Empty, game.Board().At(1, 1))
		assert.Equal(t, 1, game.Prisoners(Black))
		assert.Equal(t, 0, game.Prisoners(White))
		assert.Equal(t, 1, game.History()[6].Captured)
	})

	t.Run("Suicide is rejected", func(t *testing.T) {
		// Given: white stones at (0,1) and (1,0)
		game, _ := NewGame(SizeSmall)
		play(t, game,
			Point{8, 8}, Point{0, 1},
			Point{8, 7}, Point{1, 0},
		)

		// When: black tries the corner
		err := game.PlayMove(0, 0)

		// Then: rejected as suicide
		require.ErrorIs(t, err, ErrSuicide)
		assert.Equal(t, Empty, game.Board().At(0, 0))
		assert.Equal(t, Black, game.Turn())
	})
}

func TestGame_Pass(t *testing.T) {
	t.Run("Two passes in a row end the game", func(t *testing.T) {
		game, _ := NewGame(SizeSmall)

		ended, err := game.Pass()
		require.NoError(t, err)
		assert.False(t, ended)
		assert.Equal(t, White, game.Turn())
		assert.Equal(t, 1, game.ConsecutivePasses())
		assert.Equal(t, Black, game.LastPass())

		ended, err = game.Pass()
		require.NoError(t, err)
		assert.True(t, ended)
		assert.True(t, game.IsOver())
		assert.Equal(t, 2, game.ConsecutivePasses())
	})

	t.Run("A move between passes resets the counter", func(t *testing.T) {
		game, _ := NewGame(SizeSmall)

		_, err := game.Pass()
		require.NoError(t, err)
		play(t, game, Point{4, 4})
		assert.Equal(t, 0, game.ConsecutivePasses())
		assert.Equal(t, Empty, game.LastPass())

		ended, err := game.Pass()
		require.NoError(t, err)
		assert.False(t, ended)
		assert.Equal(t, StatusInProgress, game.Status())
	})

	t.Run("Frozen after the game ends", func(t *testing.T) {
		game, _ := NewGame(SizeSmall)
		_, _ = game.Pass()
		_, _ = game.Pass()
		history := game.History()

		err := game.PlayMove(3, 3)
		require.ErrorIs(t, err, ErrGameOver)

		var moveErr *MoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, ReasonGameOver, moveErr.Reason)

		_, err = game.Pass()
		require.ErrorIs(t, err, ErrGameOver)
		assert.Equal(t, history, game.History())
		assert.Equal(t, Empty, game.Board().At(3, 3))
	})
}

func TestGame_Reset(t *testing.T) {
	game, _ := NewGame(SizeSmall)
	play(t, game, Point{0, 0}, Point{1, 1})
	_, _ = game.Pass()
	_, _ = game.Pass()

	game.Reset()

	assert.Equal(t, StatusInProgress, game.Status())
	assert.Equal(t, Black, game.Turn())
	assert.Equal(t, 9, game.Size())
	assert.Empty(t, game.History())
	assert.Equal(t, 0, game.Board().Count(Black)+game.Board().Count(White))
}
