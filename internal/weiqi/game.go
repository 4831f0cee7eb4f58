package weiqi

import "fmt"

// Status of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusEnded      Status = "ended"
)

// Move is one accepted transition: a placement or a pass.
type Move struct {
	Number   int   `json:"number"`
	Color    Color `json:"color"`
	Pass     bool  `json:"pass,omitempty"`
	Point    Point `json:"point"`
	Captured int   `json:"captured,omitempty"`
}

func (that Move) String() string {
	if that.Pass {
		return fmt.Sprintf("%d. %s pass", that.Number, that.Color)
	}

	return fmt.Sprintf("%d. %s (%d,%d)", that.Number, that.Color, that.Point.Row, that.Point.Col)
}

// Game owns one board and everything needed to play it out. It is not safe for concurrent use.
type Game struct {
	board     *Board
	turn      Color
	status    Status
	prisoners [3]int
	history   []Move
	passes    int
	lastPass  Color
	lastMove  *Point
}

// NewGame starts an empty game of the given size with Black to move.
func NewGame(size int) (*Game, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	return &Game{
		board:  board,
		turn:   Black,
		status: StatusInProgress,
	}, nil
}

// Reset clears the board and all counters, keeping the size.
func (that *Game) Reset() {
	that.board, _ = NewBoard(that.board.size)
	that.turn = Black
	that.status = StatusInProgress
	that.prisoners = [3]int{}
	that.history = nil
	that.passes = 0
	that.lastPass = Empty
	that.lastMove = nil
}

// PlayMove places a stone for the side to move. A rejected move returns a *MoveError and leaves the game
// untouched.
func (that *Game) PlayMove(row, col int) error {
	if that.status == StatusEnded {
		return &MoveError{Reason: ReasonGameOver, Row: row, Col: col}
	}

	next, captured, reason := place(that.board.Clone(), row, col, that.turn)
	if reason != "" {
		return &MoveError{Reason: reason, Row: row, Col: col}
	}

	that.board = next
	that.prisoners[that.turn] += captured
	that.history = append(that.history, Move{
		Number:   len(that.history) + 1,
		Color:    that.turn,
		Point:    Point{Row: row, Col: col},
		Captured: captured,
	})
	that.lastMove = &Point{Row: row, Col: col}
	that.passes = 0
	that.lastPass = Empty
	that.turn = that.turn.Opponent()

	return nil
}

// Pass gives up the turn. A pass answering the opponent's pass ends the game and freezes the board; it
// reports true in that case.
func (that *Game) Pass() (bool, error) {
	if that.status == StatusEnded {
		return false, ErrGameOver
	}

	that.history = append(that.history, Move{
		Number: len(that.history) + 1,
		Color:  that.turn,
		Pass:   true,
	})

	if that.passes == 1 && that.lastPass == that.turn.Opponent() {
		that.passes = 2
		that.lastPass = that.turn
		that.status = StatusEnded

		return true, nil
	}

	that.passes = 1
	that.lastPass = that.turn
	that.turn = that.turn.Opponent()

	return false, nil
}

// Board returns a copy of the current position.
func (that *Game) Board() *Board {
	return that.board.Clone()
}

func (that *Game) Size() int {
	return that.board.size
}

// Turn returns the side to move. After the game ends it is the player who passed last.
func (that *Game) Turn() Color {
	return that.turn
}

func (that *Game) Status() Status {
	return that.status
}

func (that *Game) IsOver() bool {
	return that.status == StatusEnded
}

// Prisoners returns the number of stones captured by c.
func (that *Game) Prisoners(c Color) int {
	if c != Black && c != White {
		return 0
	}

	return that.prisoners[c]
}

// ConsecutivePasses is 0 after a placement, 1 after a single pass and 2 once the game ended by passing.
func (that *Game) ConsecutivePasses() int {
	return that.passes
}

// LastPass returns the color that passed most recently within the current pass sequence, or Empty.
func (that *Game) LastPass() Color {
	return that.lastPass
}

// LastMove returns the last placement, or nil if no stone has been played.
func (that *Game) LastMove() *Point {
	if that.lastMove == nil {
		return nil
	}

	p := *that.lastMove

	return &p
}

// History returns a copy of the accepted moves in order.
func (that *Game) History() []Move {
	history := make([]Move, len(that.history))
	copy(history, that.history)

	return history
}
