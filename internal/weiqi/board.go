package weiqi

import (
	"errors"
	"fmt"
	"strings"
)

// Color of a point. Empty is the zero value.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Supported board sizes.
const (
	SizeSmall  = 9
	SizeMedium = 13
	SizeLarge  = 19
)

var ErrInvalidBoardSize = errors.New("invalid board size")

var starPoints = map[int][]Point{
	SizeSmall: {{4, 4}},
	SizeMedium: {
		{3, 3}, {3, 6}, {3, 9},
		{6, 3}, {6, 6}, {6, 9},
		{9, 3}, {9, 6}, {9, 9},
	},
	SizeLarge: {
		{3, 3}, {3, 9}, {3, 15},
		{9, 3}, {9, 9}, {9, 15},
		{15, 3}, {15, 9}, {15, 15},
	},
}

// Opponent returns the other player's color. Empty has no opponent.
func (that Color) Opponent() Color {
	switch that {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (that Color) String() string {
	switch that {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Point is a (row, col) intersection.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

var directions = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Board is a square grid of points stored row-major.
type Board struct {
	size  int
	cells []Color
}

// ValidSize reports whether size is one of 9, 13 or 19.
func ValidSize(size int) bool {
	_, ok := starPoints[size]
	return ok
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) (*Board, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}

	return &Board{
		size:  size,
		cells: make([]Color, size*size),
	}, nil
}

func (that *Board) Size() int {
	return that.size
}

// InBounds reports whether (row, col) is on the board.
func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// At returns the color at (row, col); off-board points read as Empty.
func (that *Board) At(row, col int) Color {
	if !that.InBounds(row, col) {
		return Empty
	}

	return that.cells[row*that.size+col]
}

// Set writes a color. Off-board writes are ignored.
func (that *Board) Set(row, col int, c Color) {
	if !that.InBounds(row, col) {
		return
	}

	that.cells[row*that.size+col] = c
}

// Clone returns an independent copy of the board.
func (that *Board) Clone() *Board {
	cells := make([]Color, len(that.cells))
	copy(cells, that.cells)

	return &Board{size: that.size, cells: cells}
}

// Count returns the number of stones of color c on the board.
func (that *Board) Count(c Color) int {
	n := 0
	for _, cell := range that.cells {
		if cell == c {
			n++
		}
	}

	return n
}

// StarPoints returns the hoshi for the board size.
func (that *Board) StarPoints() []Point {
	points := make([]Point, len(starPoints[that.size]))
	copy(points, starPoints[that.size])

	return points
}

// Rows returns a copy of the board as a 2-D slice.
func (that *Board) Rows() [][]Color {
	rows := make([][]Color, that.size)
	for r := range rows {
		rows[r] = make([]Color, that.size)
		copy(rows[r], that.cells[r*that.size:(r+1)*that.size])
	}

	return rows
}

// neighbors returns the on-board orthogonal neighbours of p.
func (that *Board) neighbors(p Point) []Point {
	res := make([]Point, 0, len(directions))
	for _, d := range directions {
		n := Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if that.InBounds(n.Row, n.Col) {
			res = append(res, n)
		}
	}

	return res
}

func (that *Board) String() string {
	var sb strings.Builder
	for r := 0; r < that.size; r++ {
		for c := 0; c < that.size; c++ {
			switch that.At(r, c) {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
