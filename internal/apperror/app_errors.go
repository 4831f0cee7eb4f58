package apperror

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrCorruptSession     = errors.New("stored session no longer replays")
	ErrUnknownGame        = errors.New("unknown game kind")
	ErrInvalidBoardSize   = errors.New("invalid board size")
	ErrUnsupportedAction  = errors.New("action is not supported by this game")
	ErrGameNotOver        = errors.New("game is not over")
	ErrNoActiveSession    = errors.New("no active session")
	ErrUnknownStoreDriver = errors.New("unknown storage driver")
)
