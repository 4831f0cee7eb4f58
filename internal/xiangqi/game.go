package xiangqi

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is the only rejection the engine reports; it carries no finer reason.
var ErrIllegalMove = errors.New("illegal move")

// Move is one accepted move.
type Move struct {
	Number   int    `json:"number"`
	Piece    Piece  `json:"piece"`
	From     Square `json:"from"`
	To       Square `json:"to"`
	Captured Piece  `json:"captured"`
}

func (that Move) String() string {
	s := fmt.Sprintf("%d. %s %s-%s", that.Number, that.Piece, that.From, that.To)
	if !that.Captured.IsEmpty() {
		s += " x " + that.Captured.String()
	}

	return s
}

// Game is a Xiangqi game from the standard opening. It never ends on its own; only Reset starts over.
// It is not safe for concurrent use.
type Game struct {
	board    Board
	turn     Side
	history  []Move
	captured [3][]Piece
}

// NewGame returns a game in the opening position with Red to move.
func NewGame() *Game {
	return &Game{
		board: NewBoard(),
		turn:  Red,
	}
}

// Reset restores the opening position and clears history and captures.
func (that *Game) Reset() {
	*that = *NewGame()
}

// ApplyMove moves a piece of the side to move. Any rejection returns ErrIllegalMove and leaves the game
// untouched.
func (that *Game) ApplyMove(from, to Square) error {
	piece := that.board.At(from)
	if piece.IsEmpty() || piece.Side != that.turn || !CanMove(&that.board, from, to) {
		return fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	taken := that.board.At(to)
	that.board.Set(to, piece)
	that.board.Set(from, Piece{})

	if !taken.IsEmpty() {
		that.captured[that.turn] = append(that.captured[that.turn], taken)
	}

	that.history = append(that.history, Move{
		Number:   len(that.history) + 1,
		Piece:    piece,
		From:     from,
		To:       to,
		Captured: taken,
	})
	that.turn = that.turn.Opponent()

	return nil
}

// LegalTargets lists every square the piece on from may move to, in row-major order. It is empty when
// from is empty or holds a piece of the side not to move.
func (that *Game) LegalTargets(from Square) []Square {
	piece := that.board.At(from)
	if piece.IsEmpty() || piece.Side != that.turn {
		return nil
	}

	var targets []Square
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			to := Square{Row: r, Col: c}
			if CanMove(&that.board, from, to) {
				targets = append(targets, to)
			}
		}
	}

	return targets
}

// Board returns a copy of the position.
func (that *Game) Board() Board {
	return that.board
}

func (that *Game) Turn() Side {
	return that.turn
}

// Captured returns the pieces taken by side, in capture order.
func (that *Game) Captured(side Side) []Piece {
	if side != Red && side != Black {
		return nil
	}

	pieces := make([]Piece, len(that.captured[side]))
	copy(pieces, that.captured[side])

	return pieces
}

// LastMove returns the most recent move, or nil before the first one.
func (that *Game) LastMove() *Move {
	if len(that.history) == 0 {
		return nil
	}

	m := that.history[len(that.history)-1]

	return &m
}

// History returns a copy of the accepted moves.
func (that *Game) History() []Move {
	history := make([]Move, len(that.history))
	copy(history, that.history)

	return history
}
