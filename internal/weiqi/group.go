package weiqi

// HasLiberties reports whether the group containing (row, col) touches at least one empty point.
// The walk stops at the first liberty found. An empty or off-board start has no group and returns false.
func HasLiberties(board *Board, row, col int) bool {
	color := board.At(row, col)
	if color == Empty {
		return false
	}

	visited := make([]bool, board.size*board.size)
	stack := make([]Point, 0, board.size)
	stack = append(stack, Point{Row: row, Col: col})
	visited[row*board.size+col] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range board.neighbors(p) {
			switch board.At(n.Row, n.Col) {
			case Empty:
				return true
			case color:
				idx := n.Row*board.size + n.Col
				if !visited[idx] {
					visited[idx] = true
					stack = append(stack, n)
				}
			}
		}
	}

	return false
}

// Group returns every stone connected to (row, col) and the number of distinct liberties of that group.
func Group(board *Board, row, col int) ([]Point, int) {
	color := board.At(row, col)
	if color == Empty {
		return nil, 0
	}

	visited := make([]bool, board.size*board.size)
	liberty := make([]bool, board.size*board.size)
	stack := []Point{{Row: row, Col: col}}
	visited[row*board.size+col] = true

	var stones []Point
	liberties := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, p)

		for _, n := range board.neighbors(p) {
			idx := n.Row*board.size + n.Col
			switch board.At(n.Row, n.Col) {
			case Empty:
				if !liberty[idx] {
					liberty[idx] = true
					liberties++
				}
			case color:
				if !visited[idx] {
					visited[idx] = true
					stack = append(stack, n)
				}
			}
		}
	}

	return stones, liberties
}

// ResolveCaptures removes every opponent group adjacent to (row, col) that has no liberty left and
// returns the number of stones removed.
func ResolveCaptures(board *Board, row, col int, opponent Color) int {
	captured := 0

	for _, n := range board.neighbors(Point{Row: row, Col: col}) {
		if board.At(n.Row, n.Col) != opponent {
			continue
		}
		if HasLiberties(board, n.Row, n.Col) {
			continue
		}

		stones, _ := Group(board, n.Row, n.Col)
		for _, s := range stones {
			board.Set(s.Row, s.Col, Empty)
		}
		captured += len(stones)
	}

	return captured
}
