package weiqi

import (
	"errors"
	"fmt"
)

// Reason explains why a move was rejected.
type Reason string

const (
	ReasonOccupied    Reason = "Occupied"
	ReasonSuicide     Reason = "Suicide"
	ReasonOutOfBounds Reason = "OutOfBounds"
	ReasonGameOver    Reason = "GameOver"
	ReasonNoColor     Reason = "NoColor"
)

var (
	ErrOccupied    = errors.New("point is already occupied")
	ErrSuicide     = errors.New("move is suicide (no liberties)")
	ErrOutOfBounds = errors.New("point is off the board")
	ErrGameOver    = errors.New("game is already over")
	ErrGameNotOver = errors.New("game is not over")
	ErrNoColor     = errors.New("stone must be black or white")
)

var reasonErrors = map[Reason]error{
	ReasonOccupied:    ErrOccupied,
	ReasonSuicide:     ErrSuicide,
	ReasonOutOfBounds: ErrOutOfBounds,
	ReasonGameOver:    ErrGameOver,
	ReasonNoColor:     ErrNoColor,
}

// MoveError is a rejected placement. It unwraps to the sentinel matching its Reason.
type MoveError struct {
	Reason Reason
	Row    int
	Col    int
}

func (that *MoveError) Error() string {
	return fmt.Sprintf("%s at (%d,%d)", that.Unwrap(), that.Row, that.Col)
}

func (that *MoveError) Unwrap() error {
	return reasonErrors[that.Reason]
}

// Verdict is the result of a legality check.
type Verdict struct {
	Legal  bool
	Reason Reason
}

// IsLegalMove decides whether color may play at (row, col). The board is not modified. Any color other
// than Black or White is rejected with ReasonNoColor.
func IsLegalMove(board *Board, row, col int, color Color) Verdict {
	if _, _, reason := place(board.Clone(), row, col, color); reason != "" {
		return Verdict{Legal: false, Reason: reason}
	}

	return Verdict{Legal: true}
}

// place puts a stone on board, resolves captures and checks suicide. On rejection the board may hold a
// partial result, so callers work on a copy.
func place(board *Board, row, col int, color Color) (*Board, int, Reason) {
	if color != Black && color != White {
		return board, 0, ReasonNoColor
	}
	if !board.InBounds(row, col) {
		return board, 0, ReasonOutOfBounds
	}
	if board.At(row, col) != Empty {
		return board, 0, ReasonOccupied
	}

	board.Set(row, col, color)
	captured := ResolveCaptures(board, row, col, color.Opponent())

	if captured == 0 && !HasLiberties(board, row, col) {
		return board, 0, ReasonSuicide
	}

	return board, captured, ""
}
