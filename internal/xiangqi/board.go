package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

// Board dimensions. Row 0 is black's back rank, row 9 is red's.
const (
	Rows = 10
	Cols = 9

	// Rows 0..4 are black's half, 5..9 are red's.
	riverBlackEdge = 4
	riverRedEdge   = 5
)

var ErrBadLayout = errors.New("bad board layout")

// Square is a (row, col) coordinate.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Square) InBounds() bool {
	return that.Row >= 0 && that.Row < Rows && that.Col >= 0 && that.Col < Cols
}

func (that Square) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a value type; copying it copies the position.
type Board [Rows][Cols]Piece

const initialLayout = `rnbakabnr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RNBAKABNR`

// NewBoard returns the standard opening position.
func NewBoard() Board {
	board, err := ParseBoard(initialLayout)
	if err != nil {
		panic(err)
	}

	return board
}

// ParseBoard reads ten lines of nine Letter codes ('.' for empty).
func ParseBoard(layout string) (Board, error) {
	var board Board

	lines := strings.Split(strings.TrimSpace(layout), "\n")
	if len(lines) != Rows {
		return board, fmt.Errorf("%w: %d rows", ErrBadLayout, len(lines))
	}

	for r, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != Cols {
			return board, fmt.Errorf("%w: row %d has %d columns", ErrBadLayout, r, len(line))
		}

		for c := 0; c < Cols; c++ {
			if line[c] == '.' {
				continue
			}

			piece, ok := PieceFromLetter(line[c])
			if !ok {
				return board, fmt.Errorf("%w: unknown piece %q at (%d,%d)", ErrBadLayout, line[c], r, c)
			}
			board[r][c] = piece
		}
	}

	return board, nil
}

// At returns the piece on sq; off-board squares read as empty.
func (that *Board) At(sq Square) Piece {
	if !sq.InBounds() {
		return Piece{}
	}

	return that[sq.Row][sq.Col]
}

// Set puts a piece on sq. Off-board writes are ignored.
func (that *Board) Set(sq Square, p Piece) {
	if !sq.InBounds() {
		return
	}

	that[sq.Row][sq.Col] = p
}

func (that *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.WriteByte(that[r][c].Letter())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// inPalace reports whether sq is inside side's 3x3 palace.
func inPalace(side Side, sq Square) bool {
	if sq.Col < 3 || sq.Col > 5 {
		return false
	}

	switch side {
	case Red:
		return sq.Row >= 7 && sq.Row <= 9
	case Black:
		return sq.Row >= 0 && sq.Row <= 2
	default:
		return false
	}
}

// onOwnHalf reports whether row is on side's half of the river.
func onOwnHalf(side Side, row int) bool {
	if side == Red {
		return row >= riverRedEdge
	}

	return row <= riverBlackEdge
}

// forward is the row delta of a step toward the opponent.
func forward(side Side) int {
	if side == Red {
		return -1
	}

	return 1
}
