package apperror

import "errors"

// rejected or stalled remote operations
var (
	ErrRejected        = errors.New("operation rejected")
	ErrStalled         = errors.New("operation stalled")
	ErrNotConnected    = errors.New("not connected to relay")
	ErrProtocol        = errors.New("relay protocol violation")
	ErrRoomUnavailable = errors.New("room is not available")
)

// local guards, checked before any network call
var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrBusy              = errors.New("a move is already pending")
	ErrIllegalMove       = errors.New("move is not in the legal set")
	ErrNoActiveRoom      = errors.New("no active room")
	ErrNotOnline         = errors.New("session is not in online mode")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrUnknownMode       = errors.New("unknown game mode")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNoGame            = errors.New("no game in progress")
)
