package game

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgames-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgames-backend/internal/weiqi"
	"github.com/rocketscienceinc/boardgames-backend/internal/xiangqi"
)

// State is one running game of either kind. Exactly one of the engines is set.
// It is not safe for concurrent use; callers serialise access per game.
type State struct {
	config  Config
	weiqi   *weiqi.Game
	xiangqi *xiangqi.Game
}

// New starts a game from the opening position.
func New(conf Config) (*State, error) {
	switch conf.Kind {
	case KindGo:
		g, err := weiqi.NewGame(conf.BoardSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidBoardSize, err)
		}

		return &State{config: conf, weiqi: g}, nil
	case KindXiangqi:
		return &State{config: Config{Kind: KindXiangqi}, xiangqi: xiangqi.NewGame()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGame, conf.Kind)
	}
}

func (that *State) Config() Config {
	return that.config
}

func (that *State) Kind() Kind {
	return that.config.Kind
}

// Apply dispatches any action; it is what replay uses.
func (that *State) Apply(action Action) Result {
	if action.Type == ActionPass {
		return that.AttemptPass()
	}

	return that.AttemptMove(action)
}

// AttemptMove plays a placement (Go) or a piece move (Xiangqi).
func (that *State) AttemptMove(action Action) Result {
	switch {
	case that.weiqi != nil && action.Type == ActionPlace:
		err := that.weiqi.PlayMove(action.At.Row, action.At.Col)
		if err == nil {
			return accepted()
		}

		var moveErr *weiqi.MoveError
		if errors.As(err, &moveErr) {
			return rejected(string(moveErr.Reason))
		}

		return rejected(err.Error())
	case that.xiangqi != nil && action.Type == ActionMove:
		from := xiangqi.Square{Row: action.From.Row, Col: action.From.Col}
		to := xiangqi.Square{Row: action.To.Row, Col: action.To.Col}
		if err := that.xiangqi.ApplyMove(from, to); err != nil {
			return rejected("")
		}

		return accepted()
	default:
		return rejected(ReasonUnsupported)
	}
}

// AttemptPass gives up the turn in Go. The second consecutive pass ends the game.
func (that *State) AttemptPass() Result {
	if that.weiqi == nil {
		return rejected(ReasonUnsupported)
	}

	ended, err := that.weiqi.Pass()
	if err != nil {
		return rejected(string(weiqi.ReasonGameOver))
	}

	return Result{Accepted: true, GameEnded: ended}
}

// Reset returns to the opening position with the same configuration.
func (that *State) Reset() {
	if that.weiqi != nil {
		that.weiqi.Reset()

		return
	}

	that.xiangqi.Reset()
}

// IsOver reports whether the game has ended. Xiangqi games never end on their own.
func (that *State) IsOver() bool {
	return that.weiqi != nil && that.weiqi.IsOver()
}

// Score is the final Go count.
type Score struct {
	Black  weiqi.Points `json:"black"`
	White  weiqi.Points `json:"white"`
	Winner string       `json:"winner"`
}

const tie = "tie"

func winnerName(c weiqi.Color) string {
	if c == weiqi.Empty {
		return tie
	}

	return c.String()
}

// Score returns the final count of a finished Go game.
func (that *State) Score() (Score, error) {
	if that.weiqi == nil {
		return Score{}, fmt.Errorf("%w: score in %s", apperror.ErrUnsupportedAction, that.config.Kind)
	}

	score, err := that.weiqi.Score()
	if err != nil {
		return Score{}, fmt.Errorf("%w: %w", apperror.ErrGameNotOver, err)
	}

	return Score{
		Black:  score.Black,
		White:  score.White,
		Winner: winnerName(score.Winner()),
	}, nil
}

// LegalTargets lists the squares the Xiangqi piece on from may move to.
func (that *State) LegalTargets(from Coord) ([]Coord, error) {
	if that.xiangqi == nil {
		return nil, fmt.Errorf("%w: targets in %s", apperror.ErrUnsupportedAction, that.config.Kind)
	}

	squares := that.xiangqi.LegalTargets(xiangqi.Square{Row: from.Row, Col: from.Col})
	targets := make([]Coord, 0, len(squares))
	for _, sq := range squares {
		targets = append(targets, Coord{Row: sq.Row, Col: sq.Col})
	}

	return targets, nil
}

// PieceInfo names the Xiangqi piece on one square. Side is empty for an empty square.
type PieceInfo struct {
	Side    string `json:"side,omitempty"`
	Name    string `json:"name"`
	Chinese string `json:"chinese,omitempty"`
	Pinyin  string `json:"pinyin,omitempty"`
}

func (that PieceInfo) String() string {
	if that.Side == "" {
		return "empty"
	}

	return that.Side + " " + that.Name + " " + that.Chinese + " " + that.Pinyin
}

// PieceAt describes the piece on at. Off-board squares read as empty.
func (that *State) PieceAt(at Coord) (PieceInfo, error) {
	if that.xiangqi == nil {
		return PieceInfo{}, fmt.Errorf("%w: pieces in %s", apperror.ErrUnsupportedAction, that.config.Kind)
	}

	board := that.xiangqi.Board()
	p := board.At(xiangqi.Square{Row: at.Row, Col: at.Col})
	if p.IsEmpty() {
		return PieceInfo{Name: "empty"}, nil
	}

	return PieceInfo{
		Side:    p.Side.String(),
		Name:    p.Type.String(),
		Chinese: p.Chinese(),
		Pinyin:  p.Pinyin(),
	}, nil
}
