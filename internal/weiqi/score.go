package weiqi

// Points is one player's area count.
type Points struct {
	Stones    int `json:"stones"`
	Prisoners int `json:"prisoners"`
	Territory int `json:"territory"`
}

func (that Points) Total() int {
	return that.Stones + that.Prisoners + that.Territory
}

// Score is the final count for both players.
type Score struct {
	Black Points `json:"black"`
	White Points `json:"white"`
}

// Winner returns the color with the higher total, or Empty on a tie.
func (that Score) Winner() Color {
	switch b, w := that.Black.Total(), that.White.Total(); {
	case b > w:
		return Black
	case w > b:
		return White
	default:
		return Empty
	}
}

// Territory flood fills every maximal empty region and credits it to a color when all stones bordering
// the region share that color. Regions touching both colors, or no stones at all, count for nobody.
func Territory(board *Board) (black, white int) {
	visited := make([]bool, board.size*board.size)

	for r := 0; r < board.size; r++ {
		for c := 0; c < board.size; c++ {
			if board.At(r, c) != Empty || visited[r*board.size+c] {
				continue
			}

			size, borders := emptyRegion(board, Point{Row: r, Col: c}, visited)
			switch {
			case borders[Black] && !borders[White]:
				black += size
			case borders[White] && !borders[Black]:
				white += size
			}
		}
	}

	return black, white
}

// emptyRegion walks the empty region containing start and reports its size and the colors bordering it.
func emptyRegion(board *Board, start Point, visited []bool) (int, [3]bool) {
	var borders [3]bool

	stack := []Point{start}
	visited[start.Row*board.size+start.Col] = true
	size := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++

		for _, n := range board.neighbors(p) {
			color := board.At(n.Row, n.Col)
			if color != Empty {
				borders[color] = true
				continue
			}

			idx := n.Row*board.size + n.Col
			if !visited[idx] {
				visited[idx] = true
				stack = append(stack, n)
			}
		}
	}

	return size, borders
}

// Tally counts stones on the board and prisoners. It is valid at any point of the game and ignores
// territory.
func (that *Game) Tally() Score {
	return Score{
		Black: Points{Stones: that.board.Count(Black), Prisoners: that.prisoners[Black]},
		White: Points{Stones: that.board.Count(White), Prisoners: that.prisoners[White]},
	}
}

// Score returns the final area count. It fails with ErrGameNotOver while the game is in progress.
func (that *Game) Score() (Score, error) {
	if that.status != StatusEnded {
		return Score{}, ErrGameNotOver
	}

	score := that.Tally()
	score.Black.Territory, score.White.Territory = Territory(that.board)

	return score, nil
}

// Winner returns the winner of a finished game, Empty on a tie.
func (that *Game) Winner() (Color, error) {
	score, err := that.Score()
	if err != nil {
		return Empty, err
	}

	return score.Winner(), nil
}
