package xiangqi

// CanMove decides whether the piece on from may move to to. It checks geometry, blocking and the
// flying-general face-off; it does not look at whose turn it is.
func CanMove(board *Board, from, to Square) bool {
	if !from.InBounds() || !to.InBounds() || from == to {
		return false
	}

	piece := board.At(from)
	if piece.IsEmpty() {
		return false
	}

	target := board.At(to)
	if !target.IsEmpty() && target.Side == piece.Side {
		return false
	}

	switch piece.Type {
	case General:
		return canMoveGeneral(board, piece.Side, from, to)
	case Advisor:
		return canMoveAdvisor(piece.Side, from, to)
	case Elephant:
		return canMoveElephant(board, piece.Side, from, to)
	case Horse:
		return canMoveHorse(board, from, to)
	case Chariot:
		return canMoveChariot(board, from, to)
	case Cannon:
		return canMoveCannon(board, from, to)
	case Soldier:
		return canMoveSoldier(piece.Side, from, to)
	default:
		return false
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func canMoveGeneral(board *Board, side Side, from, to Square) bool {
	if !inPalace(side, to) {
		return false
	}

	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if dr+dc != 1 {
		return false
	}

	return !facesGeneral(board, side, from, to)
}

// facesGeneral reports whether the general of side, moved from -> to, would stand on an open file with
// the opposing general. The file is scanned from to toward the opponent's edge; from counts as vacated.
func facesGeneral(board *Board, side Side, from, to Square) bool {
	step := forward(side)
	for r := to.Row + step; r >= 0 && r < Rows; r += step {
		sq := Square{Row: r, Col: to.Col}
		if sq == from {
			continue
		}

		p := board.At(sq)
		if p.IsEmpty() {
			continue
		}

		return p.Type == General && p.Side != side
	}

	return false
}

func canMoveAdvisor(side Side, from, to Square) bool {
	if !inPalace(side, to) {
		return false
	}

	return abs(to.Row-from.Row) == 1 && abs(to.Col-from.Col) == 1
}

func canMoveElephant(board *Board, side Side, from, to Square) bool {
	if !onOwnHalf(side, to.Row) {
		return false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	if abs(dr) != 2 || abs(dc) != 2 {
		return false
	}

	eye := Square{Row: from.Row + dr/2, Col: from.Col + dc/2}

	return board.At(eye).IsEmpty()
}

func canMoveHorse(board *Board, from, to Square) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col

	var leg Square
	switch {
	case abs(dr) == 2 && abs(dc) == 1:
		leg = Square{Row: from.Row + sign(dr), Col: from.Col}
	case abs(dr) == 1 && abs(dc) == 2:
		leg = Square{Row: from.Row, Col: from.Col + sign(dc)}
	default:
		return false
	}

	return board.At(leg).IsEmpty()
}

// between counts the pieces strictly between two squares on the same row or column.
// ok is false when the squares are not orthogonally aligned.
func between(board *Board, from, to Square) (count int, ok bool) {
	if from.Row != to.Row && from.Col != to.Col {
		return 0, false
	}

	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	for sq := (Square{Row: from.Row + dr, Col: from.Col + dc}); sq != to; sq = (Square{Row: sq.Row + dr, Col: sq.Col + dc}) {
		if !board.At(sq).IsEmpty() {
			count++
		}
	}

	return count, true
}

func canMoveChariot(board *Board, from, to Square) bool {
	count, ok := between(board, from, to)

	return ok && count == 0
}

func canMoveCannon(board *Board, from, to Square) bool {
	count, ok := between(board, from, to)
	if !ok {
		return false
	}

	if board.At(to).IsEmpty() {
		return count == 0
	}

	return count == 1
}

func canMoveSoldier(side Side, from, to Square) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col

	if dr == forward(side) && dc == 0 {
		return true
	}

	crossed := !onOwnHalf(side, from.Row)

	return crossed && dr == 0 && abs(dc) == 1
}
