package xiangqi

// Side owning a piece. NoSide is the zero value and marks an empty square.
type Side uint8

const (
	NoSide Side = iota
	Red
	Black
)

func (that Side) Opponent() Side {
	switch that {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return NoSide
	}
}

func (that Side) String() string {
	switch that {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceType is the kind of a piece. NoPiece is the zero value.
type PieceType uint8

const (
	NoPiece PieceType = iota
	General
	Advisor
	Elephant
	Horse
	Chariot
	Cannon
	Soldier
)

type pieceInfo struct {
	letter  byte
	english string
	red     string
	black   string
	pinyin  [2]string
}

var pieceTable = map[PieceType]pieceInfo{
	General:  {'K', "General", "帥", "將", [2]string{"shuài", "jiàng"}},
	Advisor:  {'A', "Advisor", "仕", "士", [2]string{"shì", "shì"}},
	Elephant: {'B', "Elephant", "相", "象", [2]string{"xiàng", "xiàng"}},
	Horse:    {'N', "Horse", "馬", "馬", [2]string{"mǎ", "mǎ"}},
	Chariot:  {'R', "Chariot", "車", "車", [2]string{"jū", "jū"}},
	Cannon:   {'C', "Cannon", "炮", "炮", [2]string{"pào", "pào"}},
	Soldier:  {'P', "Soldier", "兵", "卒", [2]string{"bīng", "zú"}},
}

func (that PieceType) String() string {
	if info, ok := pieceTable[that]; ok {
		return info.english
	}

	return "None"
}

// Piece is a (type, side) pair. The zero Piece is an empty square.
type Piece struct {
	Type PieceType `json:"type"`
	Side Side      `json:"side"`
}

func (that Piece) IsEmpty() bool {
	return that.Type == NoPiece
}

// Letter is the single-character code: upper case for red, lower case for black, '.' when empty.
func (that Piece) Letter() byte {
	info, ok := pieceTable[that.Type]
	if !ok {
		return '.'
	}
	if that.Side == Black {
		return info.letter + ('a' - 'A')
	}

	return info.letter
}

// Chinese returns the traditional character printed on the piece.
func (that Piece) Chinese() string {
	info, ok := pieceTable[that.Type]
	if !ok {
		return ""
	}
	if that.Side == Black {
		return info.black
	}

	return info.red
}

func (that Piece) Pinyin() string {
	info, ok := pieceTable[that.Type]
	if !ok {
		return ""
	}
	if that.Side == Black {
		return info.pinyin[1]
	}

	return info.pinyin[0]
}

func (that Piece) String() string {
	if that.IsEmpty() {
		return "empty"
	}

	return that.Side.String() + " " + that.Type.String()
}

// PieceFromLetter decodes a Letter code. ok is false for anything else.
func PieceFromLetter(ch byte) (Piece, bool) {
	side := Red
	if ch >= 'a' && ch <= 'z' {
		side = Black
		ch -= 'a' - 'A'
	}

	for pt, info := range pieceTable {
		if info.letter == ch {
			return Piece{Type: pt, Side: side}, true
		}
	}

	return Piece{}, false
}
