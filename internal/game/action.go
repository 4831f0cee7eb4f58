package game

import "fmt"

// Kind names a rule set.
type Kind string

const (
	KindGo      Kind = "go"
	KindXiangqi Kind = "xiangqi"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindGo, KindXiangqi:
		return Kind(s), true
	default:
		return "", false
	}
}

// Config selects the rule set. BoardSize applies to Go only.
type Config struct {
	Kind      Kind `json:"kind"`
	BoardSize int  `json:"board_size,omitempty"`
}

// Coord is a (row, col) position on either board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

type ActionType string

const (
	ActionPlace ActionType = "place"
	ActionMove  ActionType = "move"
	ActionPass  ActionType = "pass"
)

// Action is one player input. Place uses At, Move uses From and To, Pass uses neither.
type Action struct {
	Type ActionType `json:"type"`
	At   Coord      `json:"at,omitempty"`
	From Coord      `json:"from,omitempty"`
	To   Coord      `json:"to,omitempty"`
}

func Place(row, col int) Action {
	return Action{Type: ActionPlace, At: Coord{Row: row, Col: col}}
}

func Move(fromRow, fromCol, toRow, toCol int) Action {
	return Action{
		Type: ActionMove,
		From: Coord{Row: fromRow, Col: fromCol},
		To:   Coord{Row: toRow, Col: toCol},
	}
}

func Pass() Action {
	return Action{Type: ActionPass}
}

func (that Action) String() string {
	switch that.Type {
	case ActionPlace:
		return "place " + that.At.String()
	case ActionMove:
		return "move " + that.From.String() + "-" + that.To.String()
	case ActionPass:
		return "pass"
	default:
		return "unknown action " + string(that.Type)
	}
}

// ReasonUnsupported marks an action the rule set has no notion of, such as a pass in Xiangqi.
const ReasonUnsupported = "Unsupported"

// Result is the outcome of one attempted action. A rejected action leaves the state untouched.
// Go rejections carry a Reason; Xiangqi rejections carry none.
type Result struct {
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
	GameEnded bool   `json:"game_ended,omitempty"`
}

func accepted() Result {
	return Result{Accepted: true}
}

func rejected(reason string) Result {
	return Result{Reason: reason}
}
