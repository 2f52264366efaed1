package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
)

// HistoryEntry is either a move played by a side or, online, a relay status message.
type HistoryEntry struct {
	Player  Player `json:"player"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Message string `json:"message,omitempty"`
}

// GameSession is the single game in progress. Owned by the session controller.
type GameSession struct {
	ID            string         `json:"id"`
	Mode          Mode           `json:"mode"`
	Difficulty    Difficulty     `json:"difficulty"`
	Size          int            `json:"size"`
	Board         Board          `json:"board"`
	CurrentPlayer Player         `json:"current_player"`
	Score         Score          `json:"score"`
	LegalMoves    []Move         `json:"legal_moves"`
	History       []HistoryEntry `json:"history"`
	Terminal      bool           `json:"terminal"`
	Winner        Outcome        `json:"winner"`
	Thinking      bool           `json:"thinking"`
	Hint          *Move          `json:"hint,omitempty"`
	Stats         *SearchStats   `json:"stats,omitempty"`
	Room          *Room          `json:"room,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
}

// NewGameSession - creates a fresh session on the opening position with Black to move.
func NewGameSession(mode Mode, size int, difficulty Difficulty) *GameSession {
	board := NewBoard(size)

	return &GameSession{
		ID:            uuid.New().String(),
		Mode:          mode,
		Difficulty:    difficulty,
		Size:          size,
		Board:         board,
		CurrentPlayer: Black,
		Score:         board.Count(),
		StartedAt:     time.Now(),
	}
}

// Clone - deep copy safe to hand to readers.
func (that *GameSession) Clone() GameSession {
	out := *that
	out.Board = that.Board.Clone()
	out.LegalMoves = slices.Clone(that.LegalMoves)
	out.History = slices.Clone(that.History)

	if that.Hint != nil {
		hint := *that.Hint
		out.Hint = &hint
	}

	if that.Stats != nil {
		stats := *that.Stats
		out.Stats = &stats
	}

	if that.Room != nil {
		room := *that.Room
		out.Room = &room
	}

	return out
}

// SetBoard - replaces the board and recomputes the score.
func (that *GameSession) SetBoard(board Board) {
	that.Board = board
	that.Score = board.Count()
}

// AppendMove - records one applied move.
func (that *GameSession) AppendMove(player Player, move Move) {
	that.History = append(that.History, HistoryEntry{Player: player, Row: move.Row, Col: move.Col})
}

// AppendMessage - records an opaque status message supplied by the relay.
func (that *GameSession) AppendMessage(player Player, message string) {
	that.History = append(that.History, HistoryEntry{Player: player, Row: -1, Col: -1, Message: message})
}

// Finish - marks the session terminal with the given outcome.
func (that *GameSession) Finish(winner Outcome) {
	that.Terminal = true
	that.Winner = winner
	that.LegalMoves = nil
	that.Thinking = false
	that.Hint = nil
}

// ConfirmPlayable - checks the local guards shared by every mode.
func (that *GameSession) ConfirmPlayable() error {
	switch {
	case that.Terminal:
		return apperror.ErrGameFinished
	case that.Thinking:
		return apperror.ErrBusy
	default:
		return nil
	}
}

// GameRecord is the persisted summary of a finished session.
type GameRecord struct {
	ID         string         `json:"id"`
	Mode       Mode           `json:"mode"`
	Difficulty Difficulty     `json:"difficulty,omitempty"`
	Size       int            `json:"size"`
	Winner     Outcome        `json:"winner"`
	Score      Score          `json:"score"`
	History    []HistoryEntry `json:"history"`
	RoomID     string         `json:"room_id,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// RecordID - one online session can host several rooms, each finished room is its own record.
func RecordID(sessionID, roomID string) string {
	if roomID == "" {
		return sessionID
	}

	return sessionID + "/" + roomID
}

// Record - summary of the session for the record store.
func (that *GameSession) Record(finishedAt time.Time) *GameRecord {
	record := &GameRecord{
		ID:         that.ID,
		Mode:       that.Mode,
		Difficulty: that.Difficulty,
		Size:       that.Size,
		Winner:     that.Winner,
		Score:      that.Score,
		History:    slices.Clone(that.History),
		StartedAt:  that.StartedAt,
		FinishedAt: finishedAt,
	}

	if that.Room != nil {
		record.ID = RecordID(that.ID, that.Room.ID)
		record.RoomID = that.Room.ID
	}

	return record
}
