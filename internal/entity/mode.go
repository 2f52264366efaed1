package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/reversi-client/internal/apperror"
)

// Mode is chosen once per session and never changes for its lifetime.
type Mode string

const (
	ModeHvH       Mode = "hvh"
	ModeHvAI      Mode = "hvai"
	ModeAIvAI     Mode = "aivai"
	ModeOnline    Mode = "online"
	modeUndefined Mode = ""
)

// ParseMode - parses a mode name as used on the command line.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeHvH, ModeHvAI, ModeAIvAI, ModeOnline:
		return mode, nil
	default:
		return modeUndefined, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, s)
	}
}

func (that Mode) IsOnline() bool {
	return that == ModeOnline
}

// Difficulty is passed through to the engine without interpretation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var difficultyDepth = map[Difficulty]int{
	DifficultyEasy:   4,
	DifficultyMedium: 6,
	DifficultyHard:   8,
	DifficultyExpert: 10,
}

func ParseDifficulty(s string) (Difficulty, error) {
	difficulty := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficultyDepth[difficulty]; !ok {
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, s)
	}

	return difficulty, nil
}

// Depth - search depth budget the engine associates with the level.
func (that Difficulty) Depth() int {
	return difficultyDepth[that]
}

// SearchStats are reported by the engine for every AI move.
type SearchStats struct {
	NodesExplored int     `json:"nodes_explored"`
	TimeMs        float64 `json:"time_ms"`
	DepthReached  int     `json:"depth_reached"`
	PruningRate   float64 `json:"pruning_rate"`
	TTHits        int     `json:"tt_hits"`
}

// AIMove is the result of an engine search.
type AIMove struct {
	Board Board       `json:"board"`
	Move  Move        `json:"move"`
	Stats SearchStats `json:"stats"`
}

// RankedMove is one entry of a position analysis.
type RankedMove struct {
	Move       Move    `json:"move"`
	Score      float64 `json:"score"`
	Evaluation string  `json:"evaluation"`
}
