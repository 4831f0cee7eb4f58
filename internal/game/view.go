package game

import (
	"strings"

	"github.com/rocketscienceinc/boardgames-backend/internal/weiqi"
	"github.com/rocketscienceinc/boardgames-backend/internal/xiangqi"
)

const statusInProgress = "in_progress"

// View is a read-only projection of a game. Cells hold one character per point: X, O or . for Go and
// the piece letter (upper case red, lower case black) or . for Xiangqi.
type View struct {
	Kind       Kind                `json:"kind"`
	Cells      [][]string          `json:"cells"`
	ToMove     string              `json:"to_move"`
	Captures   map[string]int      `json:"captures"`
	Captured   map[string][]string `json:"captured,omitempty"`
	Status     string              `json:"status"`
	LastMove   *Action             `json:"last_move,omitempty"`
	Passes     int                 `json:"passes,omitempty"`
	Winner     string              `json:"winner,omitempty"`
	StarPoints []Coord             `json:"star_points,omitempty"`
	History    []string            `json:"history"`
}

func (that *State) View() View {
	if that.weiqi != nil {
		return weiqiView(that.weiqi)
	}

	return xiangqiView(that.xiangqi)
}

func stoneLetter(c weiqi.Color) string {
	switch c {
	case weiqi.Black:
		return "X"
	case weiqi.White:
		return "O"
	default:
		return "."
	}
}

func weiqiView(g *weiqi.Game) View {
	board := g.Board()

	rows := board.Rows()
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, color := range row {
			cells[r][c] = stoneLetter(color)
		}
	}

	view := View{
		Kind:  KindGo,
		Cells: cells,
		Captures: map[string]int{
			weiqi.Black.String(): g.Prisoners(weiqi.Black),
			weiqi.White.String(): g.Prisoners(weiqi.White),
		},
		Status: string(g.Status()),
		Passes: g.ConsecutivePasses(),
	}

	if !g.IsOver() {
		view.ToMove = g.Turn().String()
	} else if winner, err := g.Winner(); err == nil {
		view.Winner = winnerName(winner)
	}

	if p := g.LastMove(); p != nil {
		last := Place(p.Row, p.Col)
		view.LastMove = &last
	}

	for _, p := range board.StarPoints() {
		view.StarPoints = append(view.StarPoints, Coord{Row: p.Row, Col: p.Col})
	}

	for _, m := range g.History() {
		view.History = append(view.History, m.String())
	}

	return view
}

func xiangqiView(g *xiangqi.Game) View {
	board := g.Board()

	cells := make([][]string, xiangqi.Rows)
	for r := range cells {
		cells[r] = make([]string, xiangqi.Cols)
		for c := range cells[r] {
			cells[r][c] = string(board.At(xiangqi.Square{Row: r, Col: c}).Letter())
		}
	}

	view := View{
		Kind:     KindXiangqi,
		Cells:    cells,
		ToMove:   g.Turn().String(),
		Captures: map[string]int{},
		Captured: map[string][]string{},
		Status:   statusInProgress,
	}

	for _, side := range []xiangqi.Side{xiangqi.Red, xiangqi.Black} {
		pieces := g.Captured(side)
		names := make([]string, 0, len(pieces))
		for _, p := range pieces {
			names = append(names, p.String())
		}

		view.Captures[side.String()] = len(pieces)
		view.Captured[side.String()] = names
	}

	if m := g.LastMove(); m != nil {
		last := Move(m.From.Row, m.From.Col, m.To.Row, m.To.Col)
		view.LastMove = &last
	}

	for _, m := range g.History() {
		view.History = append(view.History, m.String())
	}

	return view
}

// String renders the board one row per line followed by a status line.
func (that View) String() string {
	var sb strings.Builder
	for _, row := range that.Cells {
		sb.WriteString(strings.Join(row, ""))
		sb.WriteByte('\n')
	}

	sb.WriteString("status " + that.Status)
	if that.ToMove != "" {
		sb.WriteString(" to-move " + that.ToMove)
	}
	if that.Winner != "" {
		sb.WriteString(" winner " + that.Winner)
	}

	return sb.String()
}
