package gateway

import "github.com/rocketscienceinc/reversi-client/internal/entity"

type initRequest struct {
	BoardSize int    `json:"board_size"`
	SessionID string `json:"session_id"`
}

type positionRequest struct {
	Board     entity.Board  `json:"board"`
	Player    entity.Player `json:"player"`
	SessionID string        `json:"session_id"`
}

type applyRequest struct {
	Board     entity.Board  `json:"board"`
	Row       int           `json:"row"`
	Col       int           `json:"col"`
	Player    entity.Player `json:"player"`
	SessionID string        `json:"session_id"`
}

type aiMoveRequest struct {
	Board      entity.Board      `json:"board"`
	Player     entity.Player     `json:"player"`
	Difficulty entity.Difficulty `json:"difficulty"`
	SessionID  string            `json:"session_id"`
}

// envelope is implemented by every response: the engine reports {success, message}.
type envelope interface {
	ok() bool
	message() string
}

type status struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (that *status) ok() bool {
	return that.Success
}

func (that *status) message() string {
	if that.Message != "" {
		return that.Message
	}

	return that.Error
}

type boardResponse struct {
	status
	Board entity.Board `json:"board"`
}

type movesResponse struct {
	status
	Moves []entity.Move `json:"moves"`
}

type aiMoveResponse struct {
	status
	Board entity.Board       `json:"board"`
	Move  *entity.Move       `json:"move"`
	Stats entity.SearchStats `json:"stats"`
}

type analyzeResponse struct {
	status
	TopMoves []entity.RankedMove `json:"top_moves"`
}
